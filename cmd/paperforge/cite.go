package main

import (
	"errors"

	"github.com/paperforge/paperforge/internal/citation"
	"github.com/spf13/cobra"
)

var citeAddFlags struct {
	id     string
	author string
	title  string
	year   int
	source string
	doi    string
}

func init() {
	citeAddCmd.Flags().StringVar(&citeAddFlags.id, "id", "", "Citation ID (required)")
	citeAddCmd.Flags().StringVar(&citeAddFlags.author, "author", "", "Author, typically \"Surname, Initial.\" (required)")
	citeAddCmd.Flags().StringVar(&citeAddFlags.title, "title", "", "Work title (required)")
	citeAddCmd.Flags().IntVar(&citeAddFlags.year, "year", 0, "Publication year (required)")
	citeAddCmd.Flags().StringVar(&citeAddFlags.source, "source", "", "Venue, journal, or publisher (required)")
	citeAddCmd.Flags().StringVar(&citeAddFlags.doi, "doi", "", "DOI (optional, kept for BibTeX export)")

	citeCmd.AddCommand(citeAddCmd)
	citeCmd.AddCommand(citeListCmd)
	citeCmd.AddCommand(citeMarkerCmd)
	citeCmd.AddCommand(citeStyleCmd)
	rootCmd.AddCommand(citeCmd)
}

var citeCmd = &cobra.Command{
	Use:   "cite",
	Short: "Manage the paper's citations",
}

var citeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a citation",
	Long: `Register a citation with the paper.

If a citation with the same author, title, and year already exists the
existing citation ID is returned and the new record is discarded. The
match is exact and case-sensitive.`,
	RunE: runCiteAdd,
}

func runCiteAdd(cmd *cobra.Command, args []string) error {
	root := requireWorkspace()
	p := loadPaper(root)
	refs := p.Refs()

	id, err := refs.Add(citation.Record{
		ID:     citeAddFlags.id,
		Author: citeAddFlags.author,
		Title:  citeAddFlags.title,
		Year:   citeAddFlags.year,
		Source: citeAddFlags.source,
		DOI:    citeAddFlags.doi,
	})
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	p.SyncRefs(refs)
	savePaper(root, p)

	marker, _ := refs.Marker(id)
	dedup := id != citeAddFlags.id

	if humanOutput {
		if dedup {
			outputHuman("Already registered as %s, marker %s\n", id, marker)
		} else {
			outputHuman("Added %s, marker %s\n", id, marker)
		}
	} else {
		outputJSON(map[string]any{
			"citation_id":   id,
			"marker":        marker,
			"deduplicated":  dedup,
			"total_entries": refs.Len(),
		})
	}

	return nil
}

var citeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List citations in insertion order",
	RunE:  runCiteList,
}

func runCiteList(cmd *cobra.Command, args []string) error {
	root := requireWorkspace()
	refs := loadPaper(root).Refs()

	records := refs.Records()
	if humanOutput {
		for i, rec := range records {
			outputHuman("%d. [%s] %s (%d). %s\n", i+1, rec.ID, rec.Author, rec.Year, truncateString(rec.Title, 70))
		}
		return nil
	}

	outputJSON(map[string]any{"citations": records, "count": len(records)})
	return nil
}

var citeMarkerCmd = &cobra.Command{
	Use:   "marker <citation-id>",
	Short: "Print the in-text citation marker for a citation",
	Args:  cobra.ExactArgs(1),
	RunE:  runCiteMarker,
}

func runCiteMarker(cmd *cobra.Command, args []string) error {
	root := requireWorkspace()
	refs := loadPaper(root).Refs()

	marker, err := refs.Marker(args[0])
	if err != nil {
		if errors.Is(err, citation.ErrNotFound) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("%s\n", marker)
	} else {
		outputJSON(map[string]string{"citation_id": args[0], "marker": marker})
	}

	return nil
}

var citeStyleCmd = &cobra.Command{
	Use:   "style [apa|ieee|mla]",
	Short: "Get or set the citation style",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCiteStyle,
}

func runCiteStyle(cmd *cobra.Command, args []string) error {
	root := requireWorkspace()
	p := loadPaper(root)

	if len(args) == 0 {
		if humanOutput {
			outputHuman("%s\n", p.CitationStyle)
		} else {
			outputJSON(map[string]citation.Style{"style": p.CitationStyle})
		}
		return nil
	}

	style, err := citation.ParseStyle(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	p.CitationStyle = style
	savePaper(root, p)

	if humanOutput {
		outputHuman("Citation style set to %s\n", style)
	} else {
		outputJSON(map[string]citation.Style{"style": style})
	}

	return nil
}
