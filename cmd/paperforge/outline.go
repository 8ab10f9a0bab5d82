package main

import (
	"strings"

	"github.com/paperforge/paperforge/internal/outline"
	"github.com/spf13/cobra"
)

var outlineInstructions string

func init() {
	outlineCmd.Flags().StringVar(&outlineInstructions, "instructions", "", "Additional instructions for the outline")
	rootCmd.AddCommand(outlineCmd)
}

var outlineCmd = &cobra.Command{
	Use:   "outline <topic>",
	Short: "Generate a paper outline for a topic",
	Long: `Generate a structured outline covering every standard paper section.
The outline and topic are stored in the workspace paper state.

Reference material previously ingested with 'paperforge ingest' is
pulled into the prompt automatically.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOutline,
}

func runOutline(cmd *cobra.Command, args []string) error {
	root := requireWorkspace()
	p := loadPaper(root)

	var src outline.ContextSource
	if idx := maybeOpenIndex(root); idx != nil {
		defer idx.Close()
		src = idx
	}

	builder := outline.NewBuilder(newGenerator(), src)
	topic := strings.Join(args, " ")

	o, err := builder.Build(cmd.Context(), topic, outlineInstructions)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	p.Topic = o.Topic
	p.Outline = o
	savePaper(root, p)

	if humanOutput {
		outputHuman("Outline for: %s\n\n", o.Topic)
		for i, s := range o.Sections {
			outputHuman("%d. %s (%s)\n", i+1, s.Title, s.Type)
			for _, kp := range s.KeyPoints {
				outputHuman("   - %s\n", kp)
			}
		}
		return nil
	}

	outputJSON(map[string]any{"outline": o})
	return nil
}
