package export

import (
	"fmt"
	"strings"

	"github.com/paperforge/paperforge/internal/citation"
)

// ToBibTeX converts a citation record to a BibTeX entry. The DOI, which
// never appears in rendered bibliographies, is carried here for
// downstream tooling.
func ToBibTeX(rec citation.Record) string {
	entryType := determineEntryType(rec)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, rec.ID))
	b.WriteString(fmt.Sprintf("  author = {%s},\n", escapeLatex(rec.Author)))
	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(rec.Title)))

	if rec.Source != "" {
		fieldName := "journal"
		if entryType == "inproceedings" {
			fieldName = "booktitle"
		}
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", fieldName, escapeLatex(rec.Source)))
	}

	b.WriteString(fmt.Sprintf("  year = {%d},\n", rec.Year))

	if rec.DOI != "" {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", rec.DOI))
	}

	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts multiple records to BibTeX format.
func ToBibTeXList(recs []citation.Record) string {
	var entries []string
	for _, rec := range recs {
		entries = append(entries, ToBibTeX(rec))
	}
	return strings.Join(entries, "\n")
}

// determineEntryType returns the BibTeX entry type for a record.
func determineEntryType(rec citation.Record) string {
	source := strings.ToLower(rec.Source)

	// Preprints
	if strings.Contains(source, "arxiv") ||
		strings.Contains(source, "biorxiv") ||
		strings.Contains(source, "medrxiv") {
		return "article"
	}

	// Conference proceedings
	if strings.Contains(source, "proceedings") ||
		strings.Contains(source, "conference") ||
		strings.Contains(source, "workshop") ||
		strings.Contains(source, "symposium") {
		return "inproceedings"
	}

	// Default to article
	return "article"
}
