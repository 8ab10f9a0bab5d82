package export

import (
	"fmt"
	"strings"

	"github.com/paperforge/paperforge/internal/citation"
	"github.com/paperforge/paperforge/internal/paper"
)

// LaTeX renders a complete paper as a standalone article document.
func LaTeX(p *paper.Paper, refs *citation.Store, style citation.Style) (string, error) {
	if err := checkComplete(p); err != nil {
		return "", err
	}

	var b strings.Builder

	title := p.Title
	if title == "" {
		title = p.Topic
	}

	b.WriteString("\\documentclass{article}\n\n")
	b.WriteString(fmt.Sprintf("\\title{%s}\n", escapeLatex(title)))
	if p.Author != "" {
		b.WriteString(fmt.Sprintf("\\author{%s}\n", escapeLatex(p.Author)))
	}
	b.WriteString("\n\\begin{document}\n\\maketitle\n")

	for _, section := range orderedSections(p) {
		if section.Type == paper.SectionAbstract {
			b.WriteString(fmt.Sprintf("\n\\begin{abstract}\n%s\n\\end{abstract}\n", escapeLatex(section.Content)))
			continue
		}
		b.WriteString(fmt.Sprintf("\n\\section{%s}\n%s\n", escapeLatex(section.Title), escapeLatex(section.Content)))
	}

	if bib := refs.Render(style); bib != "" {
		b.WriteString("\n\\section*{References}\n\\begin{enumerate}\n")
		for _, line := range strings.Split(bib, "\n") {
			b.WriteString(fmt.Sprintf("\\item %s\n", escapeLatex(line)))
		}
		b.WriteString("\\end{enumerate}\n")
	}

	b.WriteString("\n\\end{document}\n")

	return b.String(), nil
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// Order matters: & must be first (before other escapes that might produce &)
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
