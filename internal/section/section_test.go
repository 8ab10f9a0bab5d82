package section

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/paperforge/paperforge/internal/citation"
	"github.com/paperforge/paperforge/internal/llm"
	"github.com/paperforge/paperforge/internal/paper"
)

const goodResponse = `{"title": "Introduction", "content": "This paper studies things.", "citations": ["c1"]}`

func fixedGenerator(response string) llm.Generator {
	return llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return response, nil
	})
}

func TestWrite(t *testing.T) {
	w := NewWriter(fixedGenerator(goodResponse), nil)

	got, err := w.Write(context.Background(), paper.New(), "introduction", "")
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if got.Type != paper.SectionIntroduction {
		t.Errorf("Type = %q, want introduction", got.Type)
	}
	if got.Title != "Introduction" || got.Content == "" {
		t.Errorf("content = %+v", got)
	}
	if len(got.Citations) != 1 || got.Citations[0] != "c1" {
		t.Errorf("Citations = %v, want [c1]", got.Citations)
	}
}

func TestWriteUnknownSection(t *testing.T) {
	w := NewWriter(fixedGenerator(goodResponse), nil)
	_, err := w.Write(context.Background(), paper.New(), "appendix", "")
	if !errors.Is(err, paper.ErrUnknownSection) {
		t.Errorf("Write(appendix) error = %v, want ErrUnknownSection", err)
	}
}

func TestWriteMalformedResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "no json here"},
		{"missing title", `{"content": "text"}`},
		{"missing content", `{"title": "Results"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(fixedGenerator(tt.response), nil)
			if _, err := w.Write(context.Background(), paper.New(), "results", ""); !errors.Is(err, ErrBadResponse) {
				t.Errorf("Write() error = %v, want ErrBadResponse", err)
			}
		})
	}
}

func TestWriteFencedResponse(t *testing.T) {
	fenced := "```json\n" + goodResponse + "\n```"
	w := NewWriter(fixedGenerator(fenced), nil)
	if _, err := w.Write(context.Background(), paper.New(), "introduction", ""); err != nil {
		t.Errorf("Write() with fenced response failed: %v", err)
	}
}

func TestPromptContents(t *testing.T) {
	p := paper.New()
	p.Topic = "soil ecology"
	p.Outline = &paper.Outline{
		Topic: "soil ecology",
		Sections: []paper.OutlineSection{
			{Type: paper.SectionDiscussion, Title: "Discussion of Findings", KeyPoints: []string{"compare to prior work"}},
		},
	}
	p.SetSection(paper.SectionContent{
		Type: paper.SectionAbstract, Title: "Abstract", Content: "We studied soil.",
	})

	refs := p.Refs()
	if _, err := refs.Add(citation.Record{ID: "c1", Author: "Smith, J.", Title: "Soil Basics", Year: 2020, Source: "Soil Journal"}); err != nil {
		t.Fatal(err)
	}
	p.SyncRefs(refs)

	var prompt string
	gen := llm.GeneratorFunc(func(ctx context.Context, pr string) (string, error) {
		prompt = pr
		return goodResponse, nil
	})

	_, err := NewWriter(gen, nil).Write(context.Background(), p, "discussion", "less jargon")
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	for _, want := range []string{
		"Discussion of Findings",
		"compare to prior work",
		"We studied soil.",
		"[c1] Smith, J. (2020). Soil Basics.",
		"Revision feedback: less jargon",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestPromptSkipsLaterSections(t *testing.T) {
	p := paper.New()
	p.SetSection(paper.SectionContent{Type: paper.SectionConclusion, Title: "Conclusion", Content: "The end."})

	var prompt string
	gen := llm.GeneratorFunc(func(ctx context.Context, pr string) (string, error) {
		prompt = pr
		return goodResponse, nil
	})

	// Writing the introduction must not feed the conclusion back in.
	if _, err := NewWriter(gen, nil).Write(context.Background(), p, "introduction", ""); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(prompt, "The end.") {
		t.Error("prompt for introduction includes later section content")
	}
}

func TestSummarize(t *testing.T) {
	long := strings.Repeat("word ", 200)
	got := summarize(long)
	if len(got) > 310 {
		t.Errorf("summarize() returned %d chars", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("summarize() should truncate with ellipsis, got %q", got[len(got)-10:])
	}

	if got := summarize("short text"); got != "short text" {
		t.Errorf("summarize(short) = %q", got)
	}
}

func TestSummarizeMultiByte(t *testing.T) {
	got := summarize(strings.Repeat("ü", 400))
	if !utf8.ValidString(got) {
		t.Error("summarize() produced invalid UTF-8")
	}
	if want := strings.Repeat("ü", 300) + "..."; got != want {
		t.Errorf("summarize() cut at %d runes, want 300", len([]rune(got))-3)
	}
}
