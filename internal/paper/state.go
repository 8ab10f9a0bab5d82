package paper

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paperforge/paperforge/internal/citation"
)

// ErrStateNotFound is returned by Load when the snapshot file is missing.
var ErrStateNotFound = errors.New("paper state file not found")

// ErrStateInvalid is returned by Load when the snapshot cannot be parsed.
var ErrStateInvalid = errors.New("invalid paper state file")

// Save writes the paper snapshot as indented JSON, creating parent
// directories as needed.
func Save(p *Paper, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding paper state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing paper state: %w", err)
	}

	return nil
}

// Load reads a paper snapshot from disk.
func Load(path string) (*Paper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrStateNotFound, path)
		}
		return nil, fmt.Errorf("reading paper state: %w", err)
	}

	p := New()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateInvalid, err)
	}

	if p.Sections == nil {
		p.Sections = make(map[string]SectionContent)
	}
	if p.Citations == nil {
		p.Citations = make(map[string]citation.Record)
	}
	if p.CitationStyle == "" {
		p.CitationStyle = citation.StyleAPA
	}

	return p, nil
}
