package format

import (
	"strings"

	"github.com/jcorbin/panache/cst"
)

// formatFootnoteDefinition renders a FOOTNOTE_DEFINITION as "[^id]: " at
// column zero followed by its content, with continuation lines indented by
// four spaces, matching the list/definition continuation convention
// (spec.md §4.5).
func (f *formatter) formatFootnoteDefinition(n *cst.Node, depth int) {
	prefix := indent(depth)
	id := ""
	for _, tok := range n.Tokens() {
		if tok.Kind() == cst.FOOTNOTE_REFERENCE {
			id = strings.TrimSuffix(strings.TrimPrefix(tok.Text(), "[^"), "]:")
		}
	}

	inner := &formatter{cfg: f.cfg, overrides: f.overrides}
	inner.formatSiblings(n.Children(), 0)
	body := strings.TrimRight(inner.out.String(), "\n")
	lines := strings.Split(body, "\n")
	marker := prefix + "[^" + id + "]: "
	hanging := prefix + "    "
	for i, line := range lines {
		if i == 0 {
			f.writeLine(marker + line)
			continue
		}
		if line == "" {
			f.writeLine("")
			continue
		}
		f.writeLine(hanging + line)
	}
}
