package format

import (
	"strings"

	"github.com/jcorbin/panache/cst"
)

// formatDefinitionList renders each DEFINITION_ITEM's term on its own line
// followed by one or more definitions, each starting with ":   " at column
// zero and continuation lines indented by four spaces (spec.md §4.5's
// definition-list rule).
func (f *formatter) formatDefinitionList(n *cst.Node, depth int) {
	prefix := indent(depth)
	items := n.ChildNodes()
	for i, item := range items {
		if item.Kind() != cst.DEFINITION_ITEM {
			continue
		}
		if i > 0 {
			f.blank()
		}
		if term := item.FirstChildNode(cst.TERM); term != nil {
			f.writeLine(prefix + strings.TrimSpace(renderInline(term, f.cfg)))
		}
		defs := item.ChildNodes()
		first := true
		for _, d := range defs {
			if d.Kind() != cst.DEFINITION {
				continue
			}
			if !first {
				f.blank()
			}
			first = false
			f.formatDefinition(d, prefix)
		}
	}
}

func (f *formatter) formatDefinition(d *cst.Node, prefix string) {
	inner := &formatter{cfg: f.cfg, overrides: f.overrides}
	inner.formatSiblings(d.Children(), 0)
	body := strings.TrimRight(inner.out.String(), "\n")
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if i == 0 {
			f.writeLine(prefix + ":   " + line)
			continue
		}
		if line == "" {
			f.writeLine("")
			continue
		}
		f.writeLine(prefix + "    " + line)
	}
}
