package format

import (
	"strings"

	"github.com/jcorbin/panache/config"
	"github.com/jcorbin/panache/cst"
)

// formatParagraph renders a paragraph's inline children. An inline display
// math span (`$$...$$` or `\[...\]`) breaks the surrounding text onto its
// own `$$`-delimited block and wrapping resumes after it (spec.md §4.5's
// paragraph rule), rather than letting the word-wrapper fold math content
// across line breaks like ordinary prose.
func (f *formatter) formatParagraph(n *cst.Node, depth int) {
	prefix := indent(depth)
	for _, run := range splitDisplayMath(n.Children()) {
		if run.math != "" {
			f.writeLine(prefix + "$$")
			for _, line := range strings.Split(strings.TrimRight(run.math, "\n"), "\n") {
				f.writeLine(prefix + line)
			}
			f.writeLine(prefix + "$$")
			continue
		}
		var b strings.Builder
		for _, e := range run.elems {
			// Preserve mode keeps the paragraph's own NEWLINE tokens as line
			// breaks; reflow renders them as spaces between words.
			if f.cfg.Wrap == config.WrapPreserve && e.Kind() == cst.NEWLINE {
				b.WriteByte('\n')
				continue
			}
			renderInlineElement(&b, e, f.cfg)
		}
		text := b.String()
		switch f.cfg.Wrap {
		case config.WrapPreserve:
			for _, line := range strings.Split(strings.TrimRight(text, " \n"), "\n") {
				f.writeLine(prefix + strings.TrimRight(line, " "))
			}
		default: // WrapReflow
			for _, line := range wrap(text, f.cfg.LineWidth-len(prefix)) {
				f.writeLine(prefix + line)
			}
		}
	}
}

// textRun is either a run of ordinary inline elements to be wrapped
// together, or (when math != "") a single inline display-math span to be
// rendered as its own block.
type textRun struct {
	elems []cst.Element
	math  string
}

func splitDisplayMath(elems []cst.Element) []textRun {
	var runs []textRun
	var cur []cst.Element
	for _, e := range elems {
		if e.Kind() != cst.DISPLAY_MATH {
			cur = append(cur, e)
			continue
		}
		if len(cur) > 0 {
			runs = append(runs, textRun{elems: cur})
			cur = nil
		}
		content := ""
		if n, ok := e.(*cst.Node); ok {
			for _, tok := range n.Tokens() {
				if tok.Kind() == cst.TEXT {
					content = tok.Text()
				}
			}
		}
		runs = append(runs, textRun{math: content})
	}
	if len(cur) > 0 {
		runs = append(runs, textRun{elems: cur})
	}
	return runs
}

// wrap lays out words from text across lines of at most width columns using
// minimum-raggedness word wrap (spec.md §4.5): the classic dynamic-program
// that minimizes the sum of squared slack on every line but the last,
// rather than greedy fill, so a paragraph doesn't end with one very short
// line merely because the greedy algorithm packed every earlier line as
// full as possible.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	if width < 1 {
		width = 1
	}

	n := len(words)
	wordLen := make([]int, n)
	for i, w := range words {
		wordLen[i] = len([]rune(w))
	}

	// cost[i] = minimum total badness of wrapping words[i:], break[i] = how
	// many words go on the first line of that wrapping.
	const infinity = 1 << 30
	cost := make([]int, n+1)
	brk := make([]int, n+1)
	cost[n] = 0
	for i := n - 1; i >= 0; i-- {
		cost[i] = infinity
		lineWidth := -1
		for j := i; j < n; j++ {
			if lineWidth < 0 {
				lineWidth = wordLen[j]
			} else {
				lineWidth += 1 + wordLen[j]
			}
			if lineWidth > width && j > i {
				break
			}
			var lineCost int
			if j == n-1 {
				lineCost = 0 // last line is never penalized for slack
			} else if lineWidth > width {
				if j == i {
					lineCost = 0 // single word wider than width: unavoidable, not penalized
				} else {
					lineCost = infinity
				}
			} else {
				slack := width - lineWidth
				lineCost = slack * slack
			}
			total := lineCost
			if total < infinity && cost[j+1] < infinity {
				total += cost[j+1]
			} else {
				total = infinity
			}
			if total < cost[i] {
				cost[i] = total
				brk[i] = j + 1
			}
		}
	}

	var lines []string
	i := 0
	for i < n {
		j := brk[i]
		if j <= i {
			j = i + 1
		}
		lines = append(lines, strings.Join(words[i:j], " "))
		i = j
	}
	return lines
}
