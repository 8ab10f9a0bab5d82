// Package paper defines the domain types for a research paper in
// progress and its JSON snapshot on disk.
package paper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paperforge/paperforge/internal/citation"
)

// SectionType identifies a standard research paper section.
type SectionType string

const (
	SectionAbstract         SectionType = "abstract"
	SectionIntroduction     SectionType = "introduction"
	SectionLiteratureReview SectionType = "literature_review"
	SectionMethodology      SectionType = "methodology"
	SectionResults          SectionType = "results"
	SectionDiscussion       SectionType = "discussion"
	SectionConclusion       SectionType = "conclusion"
)

// SectionOrder is the canonical rendering order. Every complete paper
// carries all of these sections.
var SectionOrder = []SectionType{
	SectionAbstract,
	SectionIntroduction,
	SectionLiteratureReview,
	SectionMethodology,
	SectionResults,
	SectionDiscussion,
	SectionConclusion,
}

// ErrUnknownSection is returned when a section name is not recognized.
var ErrUnknownSection = errors.New("unknown section type")

// ParseSectionType validates a section name.
func ParseSectionType(s string) (SectionType, error) {
	name := SectionType(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range SectionOrder {
		if st == name {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnknownSection, s, strings.Join(SectionNames(), ", "))
}

// SectionNames returns the valid section names in canonical order.
func SectionNames() []string {
	names := make([]string, len(SectionOrder))
	for i, st := range SectionOrder {
		names[i] = string(st)
	}
	return names
}

// OutlineSection is one section within a paper outline.
type OutlineSection struct {
	Type        SectionType      `json:"section_type"`
	Title       string           `json:"title"`
	KeyPoints   []string         `json:"key_points"`
	Subsections []OutlineSection `json:"subsections,omitempty"`
}

// Outline is a structured outline for a paper.
type Outline struct {
	Topic    string           `json:"topic"`
	Sections []OutlineSection `json:"sections"`
}

// Section looks up an outline section by type.
func (o *Outline) Section(st SectionType) (OutlineSection, bool) {
	for _, s := range o.Sections {
		if s.Type == st {
			return s, true
		}
	}
	return OutlineSection{}, false
}

// SectionContent is generated content for one paper section.
type SectionContent struct {
	Type      SectionType `json:"section_type"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Citations []string    `json:"citations,omitempty"` // citation IDs referenced by the text
}

// Paper is the complete state of a paper in progress. It is the shape
// persisted to disk: citations are stored as a keyed map plus an explicit
// insertion-order ID list, never relying on map iteration order.
type Paper struct {
	Title         string                     `json:"title"`
	Author        string                     `json:"author"`
	Topic         string                     `json:"topic"`
	Outline       *Outline                   `json:"outline,omitempty"`
	Sections      map[string]SectionContent  `json:"sections"`
	Citations     map[string]citation.Record `json:"citations"`
	CitationOrder []string                   `json:"citation_order"`
	CitationStyle citation.Style             `json:"citation_style"`
}

// New returns an empty paper with APA citations.
func New() *Paper {
	return &Paper{
		Sections:      make(map[string]SectionContent),
		Citations:     make(map[string]citation.Record),
		CitationStyle: citation.StyleAPA,
	}
}

// Refs builds a live citation store from the snapshot fields.
func (p *Paper) Refs() *citation.Store {
	return citation.Restore(p.Citations, p.CitationOrder, p.CitationStyle)
}

// SyncRefs writes a citation store back into the snapshot fields.
func (p *Paper) SyncRefs(s *citation.Store) {
	p.Citations = s.Snapshot()
	p.CitationOrder = s.Order()
	p.CitationStyle = s.Style()
}

// SetSection stores generated content under its section type.
func (p *Paper) SetSection(content SectionContent) {
	if p.Sections == nil {
		p.Sections = make(map[string]SectionContent)
	}
	p.Sections[string(content.Type)] = content
}

// MissingSections lists the required sections not yet written, in
// canonical order.
func (p *Paper) MissingSections() []SectionType {
	var missing []SectionType
	for _, st := range SectionOrder {
		if _, ok := p.Sections[string(st)]; !ok {
			missing = append(missing, st)
		}
	}
	return missing
}
