// Package main provides the paperforge CLI entry point.
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
	Use:   "paperforge",
	Short: "Agent-first research paper drafting toolkit",
	Long: `paperforge is an agent-first CLI for drafting research papers.

It manages a paper's outline, sections, and citations in a JSON
workspace, indexes reference folders into SQLite for full-text
retrieval, and drives an OpenAI-compatible model for outline and
section generation. All commands output JSON by default for easy
integration with AI agents and other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
