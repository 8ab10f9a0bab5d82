// Package export renders a completed paper to document formats and the
// citation set to BibTeX.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paperforge/paperforge/internal/citation"
	"github.com/paperforge/paperforge/internal/paper"
)

// MissingSectionsError reports which required sections are absent.
type MissingSectionsError struct {
	Missing []paper.SectionType
}

func (e *MissingSectionsError) Error() string {
	names := make([]string, len(e.Missing))
	for i, st := range e.Missing {
		names[i] = string(st)
	}
	return fmt.Sprintf("missing required sections: %s", strings.Join(names, ", "))
}

// checkComplete returns a MissingSectionsError if the paper lacks any
// required section.
func checkComplete(p *paper.Paper) error {
	if missing := p.MissingSections(); len(missing) > 0 {
		return &MissingSectionsError{Missing: missing}
	}
	return nil
}

// Files reports what Write produced.
type Files struct {
	Markdown string `json:"markdown"`
	LaTeX    string `json:"latex"`
	BibTeX   string `json:"bibtex,omitempty"`
}

// Write renders the paper to Markdown and LaTeX files in dir, plus a
// BibTeX file when citations exist. The paper must be complete.
func Write(p *paper.Paper, refs *citation.Store, style citation.Style, dir string) (*Files, error) {
	if err := checkComplete(p); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	files := &Files{
		Markdown: filepath.Join(dir, "paper.md"),
		LaTeX:    filepath.Join(dir, "paper.tex"),
	}

	md, err := Markdown(p, refs, style)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(files.Markdown, []byte(md), 0644); err != nil {
		return nil, fmt.Errorf("writing markdown: %w", err)
	}

	tex, err := LaTeX(p, refs, style)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(files.LaTeX, []byte(tex), 0644); err != nil {
		return nil, fmt.Errorf("writing latex: %w", err)
	}

	if refs.Len() > 0 {
		files.BibTeX = filepath.Join(dir, "references.bib")
		if err := os.WriteFile(files.BibTeX, []byte(ToBibTeXList(refs.Records())), 0644); err != nil {
			return nil, fmt.Errorf("writing bibtex: %w", err)
		}
	}

	return files, nil
}

// orderedSections returns the written sections in canonical order.
func orderedSections(p *paper.Paper) []paper.SectionContent {
	var sections []paper.SectionContent
	for _, st := range paper.SectionOrder {
		if content, ok := p.Sections[string(st)]; ok {
			sections = append(sections, content)
		}
	}
	return sections
}
