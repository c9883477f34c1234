package format

import (
	"strings"
	"unicode"

	"github.com/jcorbin/panache/cst"
)

// formatList renders a LIST's direct LIST_ITEM children. Every item's
// marker is right-aligned within the widest marker among siblings (spec.md
// §4.5's roman-numeral/lettered-list alignment rule), and an
// uppercase-letter-with-period marker ("A.") gets two trailing spaces
// instead of one, matching Pandoc's own disambiguation against a following
// sentence-initial capital.
func (f *formatter) formatList(n *cst.Node, depth int) {
	items := n.ChildNodes()
	maxWidth := 0
	for _, item := range items {
		if item.Kind() != cst.LIST_ITEM {
			continue
		}
		if w := len(itemMarker(item)); w > maxWidth {
			maxWidth = w
		}
	}

	prefix := indent(depth)
	for i, item := range items {
		if item.Kind() != cst.LIST_ITEM {
			continue
		}
		if i > 0 {
			f.blank()
		}
		f.formatListItem(item, depth, prefix, maxWidth)
	}
}

func (f *formatter) formatListItem(item *cst.Node, depth int, prefix string, maxWidth int) {
	marker := itemMarker(item)
	pad := strings.Repeat(" ", maxWidth-len(marker))
	sep := " "
	if len(marker) == 2 && marker[1] == '.' && unicode.IsUpper(rune(marker[0])) {
		sep = "  "
	}

	markerCol := prefix + pad + marker + sep
	hangingIndent := strings.Repeat(" ", len([]rune(markerCol)))

	checkbox := ""
	for _, tok := range item.Tokens() {
		if tok.Kind() == cst.TASK_CHECKBOX {
			checkbox = tok.Text() + " "
		}
	}

	children := item.ChildNodes()
	if len(children) == 0 {
		f.writeLine(strings.TrimRight(markerCol+checkbox, " "))
		return
	}

	inner := &formatter{cfg: f.cfg, overrides: f.overrides}
	inner.formatSiblings(item.Children(), 0)
	body := strings.TrimRight(inner.out.String(), "\n")
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if i == 0 {
			f.writeLine(markerCol + checkbox + line)
			continue
		}
		if line == "" {
			f.writeLine("")
			continue
		}
		f.writeLine(hangingIndent + line)
	}
}

func itemMarker(item *cst.Node) string {
	for _, tok := range item.Tokens() {
		if tok.Kind() == cst.LIST_MARKER {
			return strings.TrimSpace(tok.Text())
		}
	}
	return "-"
}
