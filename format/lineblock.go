package format

import (
	"github.com/jcorbin/panache/cst"
)

// formatLineBlockLine renders one LINE_BLOCK_LINE, always starting with
// "| " (Pandoc's line-block marker) regardless of the source marker's
// exact run of leading spaces, preserving the rest of the line verbatim
// (spec.md §4.5's line-block rule: line breaks inside a line block are
// always significant, so the formatter never reflows them).
func (f *formatter) formatLineBlockLine(n *cst.Node, depth int) {
	prefix := indent(depth)
	content := ""
	for _, tok := range n.Tokens() {
		if tok.Kind() == cst.TEXT {
			content += tok.Text()
		}
	}
	f.writeLine(prefix + "| " + content)
}
