package main

import (
	"os"

	"github.com/paperforge/paperforge/internal/config"
	"github.com/paperforge/paperforge/internal/paper"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new paperforge workspace",
	Long: `Initialize a new paperforge workspace in the current directory.

Creates:
  .paperforge/
  ├── paper.json      # Empty paper state
  ├── config.json     # Default config
  └── cache/          # Chunk index (gitignored)`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root := startDir()

	if config.IsWorkspace(root) {
		exitWithError(ExitError, "directory already contains a paperforge workspace")
	}

	if err := os.MkdirAll(config.WorkspacePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating %s directory: %v", config.PaperforgeDir, err)
	}
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	cfg := &config.Config{
		OutputDir:     config.DefaultOutputDir,
		CitationStyle: "apa",
	}
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "creating config.json: %v", err)
	}

	savePaper(root, paper.New())

	if humanOutput {
		outputHuman("Initialized paperforge workspace in %s\n", root)
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: root})
	}

	return nil
}
