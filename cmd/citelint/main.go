// Package main provides the citelint CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "citelint",
	Short: "Citation and reference compliance checker for academic documents",
	Long: `citelint checks an academic document's in-text citations against its
reference list: it extracts citation markers and bibliography entries,
matches them despite formatting inconsistencies, and reports year
mismatches, unmatched citations, and never-cited references.

All commands output JSON by default for easy integration with other
tools; pass --human for readable summaries.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
