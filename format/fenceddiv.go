package format

import (
	"strings"

	"github.com/jcorbin/panache/cst"
)

// formatFencedDiv renders a FENCED_DIV as ":::"-fences whose length grows
// by two colons per nesting depth (spec.md §4.5's fenced-div rule: deeper
// divs get visibly longer fences than their parent, the same convention
// Pandoc's own writer uses so nested div boundaries stay unambiguous), with
// normalized "{...}" attributes on the opening fence.
func (f *formatter) formatFencedDiv(n *cst.Node, depth int) {
	prefix := indent(depth)
	fence := strings.Repeat(":", 3+2*depth)

	info := ""
	if open := n.FirstChildNode(cst.DIV_FENCE_OPEN); open != nil {
		if infoNode := open.FirstChildNode(cst.DIV_INFO); infoNode != nil {
			info = strings.TrimSpace(infoNode.Text())
		}
	}

	openLine := prefix + fence
	if info != "" {
		if strings.HasPrefix(info, "{") {
			openLine += " " + info
		} else {
			openLine += " {." + info + "}"
		}
	}
	f.writeLine(openLine)

	var body []cst.Element
	for _, c := range n.Children() {
		switch c.Kind() {
		case cst.DIV_FENCE_OPEN, cst.DIV_FENCE_CLOSE:
			continue
		}
		body = append(body, c)
	}
	inner := &formatter{cfg: f.cfg, overrides: f.overrides}
	inner.formatSiblings(body, depth+1)
	out := strings.TrimRight(inner.out.String(), "\n")
	if out != "" {
		for _, line := range strings.Split(out, "\n") {
			f.writeLine(line)
		}
	}

	f.writeLine(prefix + fence)
}
