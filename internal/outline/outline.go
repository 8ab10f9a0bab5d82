// Package outline generates structured paper outlines through a
// text-generation collaborator.
package outline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/paperforge/paperforge/internal/llm"
	"github.com/paperforge/paperforge/internal/paper"
)

// ErrEmptyTopic is returned when no research topic is supplied.
var ErrEmptyTopic = errors.New("a research topic is required to generate an outline")

// ErrBadResponse is returned when the model response cannot be parsed or
// fails outline validation.
var ErrBadResponse = errors.New("invalid outline response")

// ContextSource supplies reference material relevant to a query. The
// ingest index satisfies this; a nil source means no context is used.
type ContextSource interface {
	Query(query string, limit int) ([]string, error)
}

// contextResults is how many reference chunks are pulled into the prompt.
const contextResults = 5

const promptTemplate = `You are an academic research assistant. Generate a structured outline for a research paper on the following topic.

Topic: %s
%s%s
You MUST respond with valid JSON in exactly this format (no extra text):
{
  "sections": [
    {
      "section_type": "<one of: %s>",
      "title": "<section title>",
      "key_points": ["<point 1>", "<point 2>"],
      "subsections": []
    }
  ]
}

You MUST include ALL of these section types: %s.
Each section must have a non-empty title and at least one key point.`

// Builder generates paper outlines.
type Builder struct {
	gen llm.Generator
	src ContextSource
}

// NewBuilder creates a Builder. src may be nil when no reference index
// is available.
func NewBuilder(gen llm.Generator, src ContextSource) *Builder {
	return &Builder{gen: gen, src: src}
}

// Build generates an outline for the topic, with optional free-form
// instructions. The outline is validated to contain every required
// section before it is returned.
func (b *Builder) Build(ctx context.Context, topic, instructions string) (*paper.Outline, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	prompt := b.buildPrompt(topic, strings.TrimSpace(instructions))

	response, err := b.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating outline: %w", err)
	}

	o, err := parseResponse(topic, response)
	if err != nil {
		return nil, err
	}

	if err := Validate(o); err != nil {
		return nil, err
	}

	return o, nil
}

func (b *Builder) buildPrompt(topic, instructions string) string {
	instructionsBlock := ""
	if instructions != "" {
		instructionsBlock = fmt.Sprintf("Additional instructions: %s\n", instructions)
	}

	contextBlock := ""
	if b.src != nil {
		// Context retrieval is best effort; outline generation proceeds
		// without it on failure.
		if chunks, err := b.src.Query(topic, contextResults); err == nil && len(chunks) > 0 {
			contextBlock = fmt.Sprintf("Relevant reference material:\n%s\n", strings.Join(chunks, "\n\n"))
		}
	}

	names := strings.Join(paper.SectionNames(), ", ")
	return fmt.Sprintf(promptTemplate, topic, instructionsBlock, contextBlock, names, names)
}

func parseResponse(topic, response string) (*paper.Outline, error) {
	var parsed struct {
		Sections []paper.OutlineSection `json:"sections"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(response)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	return &paper.Outline{Topic: topic, Sections: parsed.Sections}, nil
}

// Validate checks that an outline contains every required section with a
// non-empty title and at least one key point.
func Validate(o *paper.Outline) error {
	seen := make(map[paper.SectionType]bool)
	for _, s := range o.Sections {
		if s.Title == "" {
			return fmt.Errorf("%w: section %q has an empty title", ErrBadResponse, s.Type)
		}
		if len(s.KeyPoints) == 0 {
			return fmt.Errorf("%w: section %q has no key points", ErrBadResponse, s.Type)
		}
		seen[s.Type] = true
	}

	var missing []string
	for _, st := range paper.SectionOrder {
		if !seen[st] {
			missing = append(missing, string(st))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing sections: %s", ErrBadResponse, strings.Join(missing, ", "))
	}

	return nil
}
