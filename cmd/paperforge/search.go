package main

import (
	"strings"

	"github.com/paperforge/paperforge/internal/arxiv"
	"github.com/spf13/cobra"
)

var searchMax int

func init() {
	searchCmd.Flags().IntVar(&searchMax, "max", 0, "Maximum results, 1-10 (default 2)")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search ArXiv for candidate references",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	client := arxiv.NewClient()

	result, err := client.Search(cmd.Context(), strings.Join(args, " "), searchMax)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		for i, p := range result.Papers {
			outputHuman("%d. %s\n", i+1, truncateString(p.Title, 70))
			outputHuman("   %s (%d)\n", strings.Join(p.Authors, ", "), p.Published.Year())
			if p.PDFURL != "" {
				outputHuman("   %s\n", p.PDFURL)
			}
			outputHuman("\n")
		}
		return nil
	}

	outputJSON(result)
	return nil
}
