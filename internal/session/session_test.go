package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/paperforge/paperforge/internal/citation"
	"github.com/paperforge/paperforge/internal/paper"
)

func TestCreateGetDelete(t *testing.T) {
	m := NewManager()

	s := m.Create()
	if s.ID == "" {
		t.Fatal("Create() returned a session without an ID")
	}

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != s {
		t.Error("Get() returned a different session")
	}

	if err := m.Delete(s.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := m.Get(s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete = %v, want ErrNotFound", err)
	}
	if err := m.Delete(s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() twice = %v, want ErrNotFound", err)
	}
}

func TestGetUnknown(t *testing.T) {
	m := NewManager()
	if _, err := m.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(nope) = %v, want ErrNotFound", err)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	m := NewManager()
	a, b := m.Create(), m.Create()

	if a.ID == b.ID {
		t.Fatal("two sessions share an ID")
	}

	err := a.Update(func(p *paper.Paper, refs *citation.Store) error {
		_, err := refs.Add(citation.Record{
			ID: "c1", Author: "Smith, J.", Title: "First", Year: 2023, Source: "A",
		})
		return err
	})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	b.View(func(p *paper.Paper, refs *citation.Store) error {
		if refs.Len() != 0 {
			t.Errorf("session b sees %d citations from session a", refs.Len())
		}
		return nil
	})
}

func TestConcurrentAddsSerialize(t *testing.T) {
	m := NewManager()
	s := m.Create()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Update(func(p *paper.Paper, refs *citation.Store) error {
				_, err := refs.Add(citation.Record{
					ID:     string(rune('a' + n)),
					Author: "Author " + string(rune('a'+n)),
					Title:  "Title " + string(rune('a'+n)),
					Year:   2000 + n,
					Source: "Source",
				})
				return err
			})
		}(i)
	}
	wg.Wait()

	s.View(func(p *paper.Paper, refs *citation.Store) error {
		if refs.Len() != 20 {
			t.Errorf("Len() = %d, want 20", refs.Len())
		}
		order := refs.Order()
		seen := make(map[string]bool)
		for _, id := range order {
			if seen[id] {
				t.Errorf("duplicate id %q in order", id)
			}
			seen[id] = true
		}
		return nil
	})
}

func TestReplace(t *testing.T) {
	m := NewManager()
	s := m.Create()

	loaded := paper.New()
	loaded.Title = "Loaded Paper"
	loaded.Citations = map[string]citation.Record{
		"c1": {ID: "c1", Author: "Smith, J.", Title: "First", Year: 2023, Source: "A"},
	}
	loaded.CitationOrder = []string{"c1"}
	loaded.CitationStyle = citation.StyleIEEE

	s.Replace(loaded)

	s.View(func(p *paper.Paper, refs *citation.Store) error {
		if p.Title != "Loaded Paper" {
			t.Errorf("Title = %q", p.Title)
		}
		if got, _ := refs.Marker("c1"); got != "[1]" {
			t.Errorf("Marker(c1) = %q, want [1] under ieee", got)
		}
		return nil
	})
}
