package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dstrand/asmfix/config"
	"github.com/dstrand/asmfix/version"
)

var rootCmd = &cobra.Command{
	Use:   "asmfix [flags] <file>",
	Short: "Reformat assembly source into a canonical layout",
	Long: `asmfix rewrites an assembly source file with consistent capitalization,
aligned operands and comments, collapsed blank lines and wrapped long
lines, driven by a persisted configuration file.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoot,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.Flags().StringP("config", "c", config.DefaultConfigFile, "configuration file to use")
	rootCmd.Flags().StringP("output", "o", "", "write the result to this file instead of stdout")
	rootCmd.Flags().BoolP("overwrite", "x", false, "overwrite the input file (implies --safe unless --unsafe)")
	rootCmd.Flags().BoolP("safe", "s", false, "write a backup file before producing output")
	rootCmd.Flags().StringP("backup", "b", "", "backup file name (implies --safe; default "+config.DefaultBackupFile+")")
	rootCmd.Flags().BoolP("unsafe", "u", false, "skip the backup when overwriting (not recommended)")

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("verbose", false, "log pipeline details to stderr")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
