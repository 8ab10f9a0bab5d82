package main

import (
	"strings"

	"github.com/paperforge/paperforge/internal/websearch"
	"github.com/spf13/cobra"
)

var websearchMax int

func init() {
	websearchCmd.Flags().IntVar(&websearchMax, "max", 0, "Maximum results, 1-10 (default 5)")
	rootCmd.AddCommand(websearchCmd)
}

var websearchCmd = &cobra.Command{
	Use:   "websearch <query>",
	Short: "Search the web for background material",
	Long: `Search the web via DuckDuckGo for recent developments, blog posts,
and other non-academic sources. For academic papers use 'paperforge
search' instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWebsearch,
}

func runWebsearch(cmd *cobra.Command, args []string) error {
	client := websearch.NewClient()

	result, err := client.Search(cmd.Context(), strings.Join(args, " "), websearchMax)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		for i, item := range result.Results {
			outputHuman("%d. %s\n", i+1, truncateString(item.Title, 70))
			outputHuman("   %s\n", item.URL)
			outputHuman("   %s\n\n", truncateString(item.Snippet, 120))
		}
		return nil
	}

	outputJSON(result)
	return nil
}
