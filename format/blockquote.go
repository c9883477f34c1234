package format

import (
	"strings"

	"github.com/jcorbin/panache/cst"
)

// formatBlockquote renders a BLOCKQUOTE by formatting its children into a
// sub-formatter at depth 0 and prefixing every resulting line with the
// container indent plus "> " (a nested BLOCKQUOTE adds its own "> " inside
// that recursion, so the markers stack with nesting), using a bare ">" (no
// trailing space) on blank separator lines (spec.md §4.5's blockquote rule).
func (f *formatter) formatBlockquote(n *cst.Node, depth int) {
	inner := &formatter{cfg: f.cfg, overrides: f.overrides}
	inner.formatSiblings(n.Children(), 0)
	body := strings.TrimRight(inner.out.String(), "\n")
	if body == "" {
		return
	}
	prefix := indent(depth) + "> "
	for _, line := range strings.Split(body, "\n") {
		if line == "" {
			f.writeLine(indent(depth) + ">")
			continue
		}
		f.writeLine(prefix + line)
	}
}
