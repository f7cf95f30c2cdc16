package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tempo/internal/version"
)

var (
	versionFormat   string
	versionShowHash bool
	versionShowDate bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "include git commit hash")
	versionCmd.Flags().BoolVar(&versionShowDate, "date", false, "include build timestamp")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show tempo build information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		v := strings.TrimSpace(version.Version)
		if v == "" {
			v = "dev"
		}
		switch strings.ToLower(versionFormat) {
		case "pretty":
			fmt.Fprintf(out, "tempo %s\n", v)
			if versionShowHash {
				fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(version.GitCommit))
			}
			if versionShowDate {
				fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(version.BuildDate))
			}
			return nil
		case "json":
			payload := map[string]string{
				"tool":    "tempo",
				"version": v,
			}
			if versionShowHash {
				payload["git_commit"] = valueOrUnknown(version.GitCommit)
			}
			if versionShowDate {
				payload["build_date"] = valueOrUnknown(version.BuildDate)
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
