package blocks

import (
	"strings"

	"github.com/jcorbin/panache/cst"
)

// openFencedDiv opens a FENCED_DIV container on a ":::"+ opening line
// (spec.md §4.3 cascade item 11, gated by the FencedDivs extension).
func (p *Parser) openFencedDiv(width int, info, tail, term string) {
	p.stack.Push(Container{Kind: ContainerFencedDiv, Node: cst.FENCED_DIV})
	p.stack.Builder.StartNode(cst.DIV_FENCE_OPEN)
	p.stack.Builder.Token(cst.DIV_FENCE_MARKER, tail[:width])
	after := tail[width:]
	trail := after
	if info != "" {
		lead := strings.Index(after, info)
		if lead > 0 {
			p.stack.Builder.Token(cst.WHITESPACE, after[:lead])
		}
		p.stack.Builder.StartNode(cst.DIV_INFO)
		p.stack.Builder.Token(cst.TEXT, info)
		p.stack.Builder.FinishNode()
		trail = after[lead+len(info):]
	}
	if trail != "" {
		p.stack.Builder.Token(cst.WHITESPACE, trail)
	}
	if term != "" {
		p.stack.Builder.Token(cst.NEWLINE, term)
	}
	p.stack.Builder.FinishNode() // DIV_FENCE_OPEN
}
