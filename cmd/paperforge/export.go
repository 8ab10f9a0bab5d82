package main

import (
	"errors"

	"github.com/paperforge/paperforge/internal/citation"
	"github.com/paperforge/paperforge/internal/export"
	"github.com/spf13/cobra"
)

var exportFlags struct {
	output string
	style  string
}

func init() {
	exportCmd.Flags().StringVar(&exportFlags.output, "output", "", "Output directory (default: configured output_dir)")
	exportCmd.Flags().StringVar(&exportFlags.style, "style", "", "Citation style: apa, ieee, mla (default: the paper's style)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the paper to Markdown, LaTeX, and BibTeX",
	Long: `Export the paper to paper.md and paper.tex, plus references.bib when
citations exist. Every standard section must be written first.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	root := requireWorkspace()
	p := loadPaper(root)
	refs := p.Refs()

	style := refs.Style()
	if exportFlags.style != "" {
		parsed, err := citation.ParseStyle(exportFlags.style)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		style = parsed
	}

	dir := exportFlags.output
	if dir == "" {
		cfg := loadWorkspaceConfig(root)
		dir = cfg.OutputPath(root)
	}

	files, err := export.Write(p, refs, style, dir)
	if err != nil {
		var missing *export.MissingSectionsError
		if errors.As(err, &missing) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("Wrote %s\n", files.Markdown)
		outputHuman("Wrote %s\n", files.LaTeX)
		if files.BibTeX != "" {
			outputHuman("Wrote %s\n", files.BibTeX)
		}
		return nil
	}

	outputJSON(files)
	return nil
}
