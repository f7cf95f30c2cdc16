package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tempo/internal/analysis"
	"tempo/internal/diag"
	"tempo/internal/notation"
	"tempo/internal/source"
	"tempo/internal/vocab"
)

var checkCmd = &cobra.Command{
	Use:          "check <file>...",
	Short:        "Validate pattern notation in source files",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")

	registry := vocab.New()
	cachePath := cfg.CachePath
	if cachePath == "" {
		cachePath, _ = vocab.DefaultCachePath("tempo")
	}
	if cachePath != "" {
		if snap, err := vocab.LoadSnapshot(cachePath); err == nil && snap != nil {
			registry.ApplySnapshot(snap)
		}
	}
	validator := analysis.New(registry, notation.NewDelegate(notation.PermissiveGrammar{}))
	validator.MaxDiags = cfg.MaxDiagnostics

	reporter := &diag.Reporter{
		Out:   cmd.OutOrStdout(),
		Color: useColor(cmd),
	}

	total := 0
	hasErrors := false
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		file := source.NewFile(path, content)
		diags, _ := validator.Validate(file)
		reporter.Report(file, diags)
		total += len(diags)
		for _, d := range diags {
			if d.Severity == diag.SevError {
				hasErrors = true
			}
		}
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%d file(s), %d diagnostic(s)\n", len(args), total)
	}
	if hasErrors {
		return fmt.Errorf("check failed")
	}
	return nil
}

func useColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
