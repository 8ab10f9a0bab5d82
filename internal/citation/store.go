package citation

import (
	"fmt"
	"sort"
	"strings"
)

// Store holds the citations of one paper. Records are keyed by ID; a
// separate append-only list carries insertion order, which is what
// bibliography rendering and IEEE numbering are defined over. Never rely
// on map iteration order for this.
//
// A Store is not safe for concurrent mutation. The owning session must
// serialize Add calls; reads (Render, Marker, Get) may run in parallel
// with each other against a stable store.
type Store struct {
	records map[string]Record
	order   []string
	style   Style
}

// NewStore returns an empty store configured for APA markers.
func NewStore() *Store {
	return &Store{
		records: make(map[string]Record),
		style:   StyleAPA,
	}
}

// Restore rebuilds a store from a persisted snapshot. Order entries
// without a matching record are dropped; records missing from the order
// list (snapshots written before the order list existed) are appended in
// sorted-ID order so that loading stays deterministic.
func Restore(records map[string]Record, order []string, style Style) *Store {
	s := NewStore()
	if style != "" {
		s.style = style
	}

	for _, id := range order {
		rec, ok := records[id]
		if !ok {
			continue
		}
		if _, dup := s.records[id]; dup {
			continue
		}
		s.records[id] = rec
		s.order = append(s.order, id)
	}

	var missing []string
	for id := range records {
		if _, ok := s.records[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	for _, id := range missing {
		s.records[id] = records[id]
		s.order = append(s.order, id)
	}

	return s
}

// Add stores a record and returns its citation ID.
//
// If a record with the same (author, title, year) triple already exists,
// the existing ID is returned and the incoming record is discarded whole,
// including any differing source or DOI. The match is exact and
// case-sensitive: "Smith, J." and "J. Smith" do not deduplicate. Two
// genuinely distinct sources sharing the triple (reprints) collapse into
// one entry; that imprecision is accepted.
//
// The records map and the order list are extended together or not at all.
func (s *Store) Add(rec Record) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}

	for _, id := range s.order {
		existing := s.records[id]
		if existing.Author == rec.Author && existing.Title == rec.Title && existing.Year == rec.Year {
			return id, nil
		}
	}

	if _, taken := s.records[rec.ID]; taken {
		return "", fmt.Errorf("%w: citation_id %q already in use", ErrInvalid, rec.ID)
	}

	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	return rec.ID, nil
}

// Get returns the record for an ID.
func (s *Store) Get(id string) (Record, error) {
	rec, ok := s.records[id]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, nil
}

// Len returns the number of stored citations.
func (s *Store) Len() int {
	return len(s.order)
}

// Order returns a copy of the insertion-order ID list.
func (s *Store) Order() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Records returns all records in insertion order.
func (s *Store) Records() []Record {
	out := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out
}

// Snapshot returns a copy of the records map for persistence.
func (s *Store) Snapshot() map[string]Record {
	out := make(map[string]Record, len(s.records))
	for id, rec := range s.records {
		out[id] = rec
	}
	return out
}

// Style returns the configured marker style.
func (s *Store) Style() Style {
	return s.style
}

// SetStyle changes the style used by Marker. It does not affect stored
// ordering and may be changed at any point between reads.
func (s *Store) SetStyle(style Style) {
	s.style = style
}

// Render formats the full bibliography in the given style, one line per
// citation in insertion order. An empty store renders an empty string.
// Unknown styles fall back to APA rather than failing; external callers
// depend on that leniency.
func (s *Store) Render(style Style) string {
	if len(s.order) == 0 {
		return ""
	}

	entries := make([]string, 0, len(s.order))
	for i, id := range s.order {
		entries = append(entries, formatEntry(s.records[id], style, i+1))
	}
	return strings.Join(entries, "\n")
}

// formatEntry renders one bibliography line. number is the 1-based
// insertion-order position, used only by IEEE.
func formatEntry(rec Record, style Style, number int) string {
	switch style {
	case StyleIEEE:
		return fmt.Sprintf("[%d] %s, \"%s,\" %s, %d.", number, rec.Author, rec.Title, rec.Source, rec.Year)
	case StyleMLA:
		author := strings.TrimRight(rec.Author, ".")
		return fmt.Sprintf("%s. \"%s.\" %s, %d.", author, rec.Title, rec.Source, rec.Year)
	default:
		return fmt.Sprintf("%s (%d). %s. %s.", rec.Author, rec.Year, rec.Title, rec.Source)
	}
}

// Marker returns the in-text citation token for an ID using the store's
// configured style. The IEEE index is re-derived from the order list on
// every call since the list can grow between calls.
func (s *Store) Marker(id string) (string, error) {
	rec, ok := s.records[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	switch s.style {
	case StyleIEEE:
		for i, oid := range s.order {
			if oid == id {
				return fmt.Sprintf("[%d]", i+1), nil
			}
		}
		// Unreachable while the map/order invariant holds.
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	case StyleMLA:
		return fmt.Sprintf("(%s %d)", rec.Author, rec.Year), nil
	default:
		return fmt.Sprintf("(%s, %d)", rec.Author, rec.Year), nil
	}
}
