package format

import (
	"strings"

	"github.com/jcorbin/panache/cst"
)

// formatMathBlock renders a MATH_BLOCK as a bare "$$" line, content
// indented by cfg.MathIndent, and a closing "$$" line carrying any trailing
// "{#label}" (spec.md §4.5's math-block rule).
func (f *formatter) formatMathBlock(n *cst.Node, depth int) {
	prefix := indent(depth)
	mathIndent := strings.Repeat(" ", f.cfg.MathIndent)
	content := ""
	if body := n.FirstChildNode(cst.MATH_CONTENT); body != nil {
		content = body.Text()
	}

	label := ""
	trimmed := strings.TrimRight(content, "\n \t")
	if idx := strings.LastIndex(trimmed, "{#"); idx >= 0 && strings.HasSuffix(trimmed, "}") {
		label = trimmed[idx:]
		content = strings.TrimRight(trimmed[:idx], " \n")
	}

	f.writeLine(prefix + "$$")
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		if line == "" {
			f.writeLine("")
			continue
		}
		f.writeLine(prefix + mathIndent + line)
	}
	closing := prefix + "$$"
	if label != "" {
		closing += " " + label
	}
	f.writeLine(closing)
}
