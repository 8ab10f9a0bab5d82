package export

import (
	"fmt"
	"strings"

	"github.com/paperforge/paperforge/internal/citation"
	"github.com/paperforge/paperforge/internal/paper"
)

// Markdown renders a complete paper as a Markdown document with a title
// block, sections in canonical order, and a references section when
// citations exist.
func Markdown(p *paper.Paper, refs *citation.Store, style citation.Style) (string, error) {
	if err := checkComplete(p); err != nil {
		return "", err
	}

	var b strings.Builder

	title := p.Title
	if title == "" {
		title = p.Topic
	}
	b.WriteString(fmt.Sprintf("# %s\n", title))
	if p.Author != "" {
		b.WriteString(fmt.Sprintf("\n*%s*\n", p.Author))
	}

	for _, section := range orderedSections(p) {
		b.WriteString(fmt.Sprintf("\n## %s\n\n%s\n", section.Title, section.Content))
	}

	if bib := refs.Render(style); bib != "" {
		b.WriteString("\n## References\n\n")
		for _, line := range strings.Split(bib, "\n") {
			b.WriteString(fmt.Sprintf("%s\n\n", line))
		}
	}

	return b.String(), nil
}
