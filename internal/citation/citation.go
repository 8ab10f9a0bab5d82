// Package citation manages the bibliographic records of a paper in
// progress: deduplicated storage with stable identifiers, bibliography
// rendering in multiple styles, and in-text citation markers.
package citation

import (
	"errors"
	"fmt"
)

// Style selects a citation formatting style.
type Style string

const (
	StyleAPA  Style = "apa"
	StyleIEEE Style = "ieee"
	StyleMLA  Style = "mla"
)

// ValidStyles lists the supported style values.
var ValidStyles = []Style{StyleAPA, StyleIEEE, StyleMLA}

// ErrInvalid is returned for malformed or incomplete citation input.
var ErrInvalid = errors.New("invalid citation")

// ErrNotFound is returned when a citation ID does not exist in the store.
var ErrNotFound = errors.New("citation not found")

// ErrUnknownStyle is returned by ParseStyle for unrecognized style values.
// The store itself never returns it: unknown styles degrade to APA there.
var ErrUnknownStyle = errors.New("unknown citation style")

// ParseStyle validates a style string at a boundary (CLI flag, HTTP query).
// Inside the store an unknown style silently falls back to APA; callers that
// want strict validation use ParseStyle first.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleAPA, StyleIEEE, StyleMLA:
		return Style(s), nil
	}
	return "", fmt.Errorf("%w: %q (valid: apa, ieee, mla)", ErrUnknownStyle, s)
}

// Record is a single bibliographic source. Author, title, and year are
// immutable once the record is accepted; revising a citation means adding
// a logically new record.
type Record struct {
	ID     string `json:"citation_id"`
	Author string `json:"author"` // Typically "Surname, Initial."
	Title  string `json:"title"`
	Year   int    `json:"year"`
	Source string `json:"source"` // Venue, journal, or publisher
	DOI    string `json:"doi,omitempty"`
}

// Validate checks that the required fields are present.
// DOI is optional; it is carried for export consumers (BibTeX) and never
// appears in rendered bibliographies.
func (r Record) Validate() error {
	switch {
	case r.ID == "":
		return fmt.Errorf("%w: citation_id is required", ErrInvalid)
	case r.Author == "":
		return fmt.Errorf("%w: author is required", ErrInvalid)
	case r.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalid)
	case r.Year == 0:
		return fmt.Errorf("%w: year is required", ErrInvalid)
	case r.Source == "":
		return fmt.Errorf("%w: source is required", ErrInvalid)
	}
	return nil
}
