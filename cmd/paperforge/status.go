package main

import (
	"github.com/paperforge/paperforge/internal/paper"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show paper progress",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	root := requireWorkspace()
	p := loadPaper(root)

	written := make([]string, 0, len(p.Sections))
	for _, st := range paper.SectionOrder {
		if _, ok := p.Sections[string(st)]; ok {
			written = append(written, string(st))
		}
	}
	missing := p.MissingSections()

	if humanOutput {
		outputHuman("Workspace: %s\n", root)
		if p.Title != "" {
			outputHuman("Title:     %s\n", p.Title)
		}
		if p.Topic != "" {
			outputHuman("Topic:     %s\n", p.Topic)
		}
		outputHuman("Outline:   %v\n", p.Outline != nil)
		outputHuman("Sections:  %d/%d written\n", len(written), len(paper.SectionOrder))
		for _, st := range missing {
			outputHuman("  missing: %s\n", st)
		}
		outputHuman("Citations: %d (%s)\n", len(p.CitationOrder), p.CitationStyle)
		return nil
	}

	outputJSON(map[string]any{
		"workspace":        root,
		"title":            p.Title,
		"topic":            p.Topic,
		"has_outline":      p.Outline != nil,
		"sections_written": written,
		"sections_missing": missing,
		"citation_count":   len(p.CitationOrder),
		"citation_style":   p.CitationStyle,
	})
	return nil
}
