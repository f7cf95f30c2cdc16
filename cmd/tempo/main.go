package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tempo/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tempo",
	Short: "Tempo live-coding language tools",
	Long:  `Tempo provides editor tooling for live-coded pattern notation`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("config", "", "path to tempo.toml")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to report")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
