package main

import (
	"github.com/paperforge/paperforge/internal/citation"
	"github.com/spf13/cobra"
)

var bibStyle string

func init() {
	bibCmd.Flags().StringVar(&bibStyle, "style", "", "Citation style: apa, ieee, mla (default: the paper's style)")
	rootCmd.AddCommand(bibCmd)
}

var bibCmd = &cobra.Command{
	Use:   "bib",
	Short: "Render the bibliography",
	Long: `Render the bibliography, one entry per line in the order citations
were registered.`,
	RunE: runBib,
}

func runBib(cmd *cobra.Command, args []string) error {
	root := requireWorkspace()
	refs := loadPaper(root).Refs()

	style := refs.Style()
	if bibStyle != "" {
		parsed, err := citation.ParseStyle(bibStyle)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		style = parsed
	}

	bib := refs.Render(style)

	if humanOutput {
		if bib != "" {
			outputHuman("%s\n", bib)
		}
		return nil
	}

	outputJSON(map[string]any{
		"style":        style,
		"bibliography": bib,
		"count":        refs.Len(),
	})
	return nil
}
