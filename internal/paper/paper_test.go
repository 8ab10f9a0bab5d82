package paper

import (
	"errors"
	"testing"

	"github.com/paperforge/paperforge/internal/citation"
)

func TestParseSectionType(t *testing.T) {
	tests := []struct {
		in      string
		want    SectionType
		wantErr bool
	}{
		{"abstract", SectionAbstract, false},
		{"  Introduction ", SectionIntroduction, false},
		{"LITERATURE_REVIEW", SectionLiteratureReview, false},
		{"appendix", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseSectionType(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownSection) {
				t.Errorf("ParseSectionType(%q) error = %v, want ErrUnknownSection", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSectionType(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSectionType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMissingSections(t *testing.T) {
	p := New()
	if got := p.MissingSections(); len(got) != len(SectionOrder) {
		t.Fatalf("MissingSections() on empty paper = %d entries, want %d", len(got), len(SectionOrder))
	}

	for _, st := range SectionOrder {
		p.SetSection(SectionContent{Type: st, Title: string(st), Content: "text"})
	}
	if got := p.MissingSections(); len(got) != 0 {
		t.Errorf("MissingSections() on complete paper = %v, want none", got)
	}

	delete(p.Sections, string(SectionResults))
	got := p.MissingSections()
	if len(got) != 1 || got[0] != SectionResults {
		t.Errorf("MissingSections() = %v, want [results]", got)
	}
}

func TestRefsRoundTrip(t *testing.T) {
	p := New()
	refs := p.Refs()

	for _, rec := range []citation.Record{
		{ID: "c1", Author: "Smith, J.", Title: "First", Year: 2023, Source: "Journal A"},
		{ID: "c2", Author: "Doe, A.", Title: "Second", Year: 2021, Source: "Journal B"},
	} {
		if _, err := refs.Add(rec); err != nil {
			t.Fatalf("Add(%s) failed: %v", rec.ID, err)
		}
	}
	refs.SetStyle(citation.StyleIEEE)
	p.SyncRefs(refs)

	if len(p.Citations) != 2 {
		t.Errorf("Citations map has %d entries, want 2", len(p.Citations))
	}
	if len(p.CitationOrder) != 2 || p.CitationOrder[0] != "c1" || p.CitationOrder[1] != "c2" {
		t.Errorf("CitationOrder = %v, want [c1 c2]", p.CitationOrder)
	}

	rebuilt := p.Refs()
	if rebuilt.Style() != citation.StyleIEEE {
		t.Errorf("rebuilt style = %q, want ieee", rebuilt.Style())
	}
	if got, _ := rebuilt.Marker("c2"); got != "[2]" {
		t.Errorf("rebuilt Marker(c2) = %q, want [2]", got)
	}
}

func TestOutlineSectionLookup(t *testing.T) {
	o := &Outline{
		Topic: "testing",
		Sections: []OutlineSection{
			{Type: SectionAbstract, Title: "Abstract", KeyPoints: []string{"summary"}},
		},
	}

	if _, ok := o.Section(SectionAbstract); !ok {
		t.Error("Section(abstract) not found")
	}
	if _, ok := o.Section(SectionResults); ok {
		t.Error("Section(results) unexpectedly found")
	}
}
