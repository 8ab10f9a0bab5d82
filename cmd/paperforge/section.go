package main

import (
	"errors"

	"github.com/paperforge/paperforge/internal/paper"
	"github.com/paperforge/paperforge/internal/section"
	"github.com/spf13/cobra"
)

var sectionFeedback string

func init() {
	sectionCmd.Flags().StringVar(&sectionFeedback, "feedback", "", "Revision feedback; regenerates the section with this guidance")
	rootCmd.AddCommand(sectionCmd)
}

var sectionCmd = &cobra.Command{
	Use:   "section <name>",
	Short: "Generate content for one paper section",
	Long: `Generate content for one paper section and store it in the workspace
paper state. Valid names: abstract, introduction, literature_review,
methodology, results, discussion, conclusion.

Earlier sections, the outline, registered citations, and ingested
reference material all feed into the prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: runSection,
}

func runSection(cmd *cobra.Command, args []string) error {
	root := requireWorkspace()
	p := loadPaper(root)

	var src section.ContextSource
	if idx := maybeOpenIndex(root); idx != nil {
		defer idx.Close()
		src = idx
	}

	writer := section.NewWriter(newGenerator(), src)

	content, err := writer.Write(cmd.Context(), p, args[0], sectionFeedback)
	if err != nil {
		if errors.Is(err, paper.ErrUnknownSection) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	p.SetSection(content)
	savePaper(root, p)

	if humanOutput {
		outputHuman("%s\n\n%s\n", content.Title, content.Content)
		return nil
	}

	outputJSON(map[string]any{"section": content})
	return nil
}
