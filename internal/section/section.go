// Package section generates content for individual paper sections
// through a text-generation collaborator.
package section

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/paperforge/paperforge/internal/llm"
	"github.com/paperforge/paperforge/internal/paper"
)

// ErrBadResponse is returned when the model response cannot be parsed.
var ErrBadResponse = errors.New("invalid section response")

// roles describes what each section is supposed to accomplish; it is fed
// into the prompt so the model writes the right kind of text.
var roles = map[paper.SectionType]string{
	paper.SectionAbstract:         "A concise summary of the entire paper, including the research problem, methods, key findings, and conclusions.",
	paper.SectionIntroduction:     "Introduces the research topic, states the problem, provides background context, and outlines the paper's objectives and structure.",
	paper.SectionLiteratureReview: "Surveys and synthesizes existing research relevant to the topic, identifying gaps the current paper addresses.",
	paper.SectionMethodology:      "Describes the research design, methods, data collection, and analysis procedures used in the study.",
	paper.SectionResults:          "Presents the findings of the research objectively, using data, tables, and figures as appropriate.",
	paper.SectionDiscussion:       "Interprets the results, discusses implications, compares with existing literature, and addresses limitations.",
	paper.SectionConclusion:       "Summarizes the key findings, restates the significance, and suggests directions for future research.",
}

const promptTemplate = `You are an academic research assistant writing a section of a research paper.

Section Type: %s
Section Role: %s
%s%s%s%s
Write the content for the "%s" section. Use an academic tone appropriate for a research paper.

You MUST respond with valid JSON in exactly this format (no extra text):
{
  "title": "<section title>",
  "content": "<the full section text>",
  "citations": ["<citation_id_1>", "<citation_id_2>"]
}

The "citations" array should list IDs of any references you cite. If no citations are used, return an empty array.`

// contextResults is how many reference chunks are pulled into the prompt.
const contextResults = 5

// ContextSource supplies reference material relevant to a query.
type ContextSource interface {
	Query(query string, limit int) ([]string, error)
}

// Writer generates section content.
type Writer struct {
	gen llm.Generator
	src ContextSource
}

// NewWriter creates a Writer. src may be nil when no reference index is
// available.
func NewWriter(gen llm.Generator, src ContextSource) *Writer {
	return &Writer{gen: gen, src: src}
}

// Write generates content for the named section of the paper. feedback,
// when non-empty, asks the model to revise with that guidance. The
// result is not stored into the paper; that is the caller's decision.
func (w *Writer) Write(ctx context.Context, p *paper.Paper, name, feedback string) (paper.SectionContent, error) {
	st, err := paper.ParseSectionType(name)
	if err != nil {
		return paper.SectionContent{}, err
	}

	prompt := w.buildPrompt(p, st, strings.TrimSpace(feedback))

	response, err := w.gen.Generate(ctx, prompt)
	if err != nil {
		return paper.SectionContent{}, fmt.Errorf("generating section %s: %w", st, err)
	}

	return parseResponse(st, response)
}

func (w *Writer) buildPrompt(p *paper.Paper, st paper.SectionType, feedback string) string {
	outlineBlock := ""
	if p.Outline != nil {
		if os, ok := p.Outline.Section(st); ok {
			outlineBlock = fmt.Sprintf("Outline for this section:\nTitle: %s\nKey points: %s\n",
				os.Title, strings.Join(os.KeyPoints, "; "))
		}
	}

	previousBlock := ""
	if len(p.Sections) > 0 {
		var parts []string
		for _, prev := range paper.SectionOrder {
			if prev == st {
				break
			}
			if content, ok := p.Sections[string(prev)]; ok {
				parts = append(parts, fmt.Sprintf("%s: %s", content.Title, summarize(content.Content)))
			}
		}
		if len(parts) > 0 {
			previousBlock = fmt.Sprintf("Previously written sections:\n%s\n", strings.Join(parts, "\n"))
		}
	}

	referencesBlock := w.referencesBlock(p, st)

	feedbackBlock := ""
	if feedback != "" {
		feedbackBlock = fmt.Sprintf("Revision feedback: %s\n", feedback)
	}

	return fmt.Sprintf(promptTemplate, st, roles[st],
		outlineBlock, previousBlock, referencesBlock, feedbackBlock, st)
}

// referencesBlock lists the registered citations and any indexed
// reference material so generated text can cite by ID.
func (w *Writer) referencesBlock(p *paper.Paper, st paper.SectionType) string {
	var lines []string

	if len(p.Citations) > 0 {
		ids := make([]string, 0, len(p.Citations))
		for id := range p.Citations {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			rec := p.Citations[id]
			lines = append(lines, fmt.Sprintf("[%s] %s (%d). %s.", id, rec.Author, rec.Year, rec.Title))
		}
	}

	if w.src != nil {
		query := p.Topic
		if query == "" {
			query = string(st)
		}
		if chunks, err := w.src.Query(query, contextResults); err == nil {
			lines = append(lines, chunks...)
		}
	}

	if len(lines) == 0 {
		return ""
	}
	return fmt.Sprintf("Available references:\n%s\n", strings.Join(lines, "\n"))
}

// summarize truncates section text for inclusion in a prompt. The cut
// lands on a rune boundary so multi-byte text stays valid.
func summarize(content string) string {
	const maxLen = 300
	runes := []rune(strings.Join(strings.Fields(content), " "))
	if len(runes) <= maxLen {
		return string(runes)
	}
	return string(runes[:maxLen]) + "..."
}

func parseResponse(st paper.SectionType, response string) (paper.SectionContent, error) {
	var parsed struct {
		Title     string   `json:"title"`
		Content   string   `json:"content"`
		Citations []string `json:"citations"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(response)), &parsed); err != nil {
		return paper.SectionContent{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if parsed.Title == "" || parsed.Content == "" {
		return paper.SectionContent{}, fmt.Errorf("%w: title and content are required", ErrBadResponse)
	}

	return paper.SectionContent{
		Type:      st,
		Title:     parsed.Title,
		Content:   parsed.Content,
		Citations: parsed.Citations,
	}, nil
}
