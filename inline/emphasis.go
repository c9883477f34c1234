package inline

import "github.com/jcorbin/panache/cst"

// opener is a still-unmatched entry on the delimiter stack.
type opener struct {
	atomIndex int
	outIndex  int // index into out where this opener's marker token lives
	char      byte
	count     int
	canClose  bool
}

// resolve implements spec.md §4.4's Phase 2: it walks the flat atom
// sequence scan produced and resolves atomDelim runs into EMPHASIS/STRONG
// nodes using the CommonMark delimiter-stack algorithm (left-to-right scan,
// nearest-opener matching, "rule of 3s"), returning the final element
// sequence ready to replace the node's original TEXT/NEWLINE children.
//
// Each delimiter run resolves against at most one counterpart: once an
// opener and a closer are matched, both are fully consumed (using 2 of
// each when both sides have at least 2, producing STRONG; otherwise 1,
// producing EMPHASIS), with any unused characters emitted as literal text
// immediately adjacent to the match. A run's leftover characters never
// take part in a second match, so `***a***` resolves to a STRONG node with
// one literal "*" on each side; no EMPHASIS node is built for it.
func resolve(atoms []atom) []cst.Element {
	out := make([]cst.Element, 0, len(atoms))
	var stack []opener

	appendPlain := func(s string) {
		for _, e := range splitPlainText(s) {
			out = append(out, e)
		}
	}

	for ai, a := range atoms {
		switch a.kind {
		case atomPlain:
			appendPlain(a.text)

		case atomElement:
			out = append(out, a.elem)

		case atomDelim:
			if a.delimChar == '~' {
				appendPlain(a.text)
				continue
			}
			if a.delimCanClose {
				if idx, use, matched := findOpener(stack, a); matched {
					op := stack[idx]
					stack = stack[:idx]

					markerKind := cst.EMPHASIS_MARKER
					nodeKind := cst.EMPHASIS
					if use == 2 {
						markerKind = cst.STRONG_MARKER
						nodeKind = cst.STRONG
					}

					openerLeftover := op.count - use
					closerLeftover := a.delimCount - use

					// Splice: everything in out from op.outIndex onward (the
					// opener's marker plus all content since) becomes the
					// new node's children, replacing the opener marker with
					// the possibly-shrunk version and appending the closer.
					inner := append([]cst.Element{}, out[op.outIndex+1:]...)
					var prefix string
					if openerLeftover > 0 {
						prefix = repeatByte(a.delimChar, openerLeftover)
					}
					openerTok := cst.NewToken(markerKind, repeatByte(a.delimChar, use))
					children := make([]cst.Element, 0, len(inner)+2)
					children = append(children, openerTok)
					children = append(children, inner...)
					children = append(children, cst.NewToken(markerKind, repeatByte(a.delimChar, use)))
					node := cst.NewNode(nodeKind, children...)

					newOut := out[:op.outIndex]
					if prefix != "" {
						newOut = append(newOut, cst.NewToken(cst.TEXT, prefix))
					}
					newOut = append(newOut, node)
					if closerLeftover > 0 {
						newOut = append(newOut, cst.NewToken(cst.TEXT, repeatByte(a.delimChar, closerLeftover)))
					}
					out = newOut
					continue
				}
			}
			if a.delimCanOpen {
				stack = append(stack, opener{atomIndex: ai, outIndex: len(out), char: a.delimChar, count: a.delimCount, canClose: a.delimCanClose})
				out = append(out, cst.NewToken(cst.TEXT, a.text))
				continue
			}
			appendPlain(a.text)
		}
	}
	return out
}

// findOpener searches the delimiter stack from the top down for the
// nearest compatible opener, applying the rule of 3s.
func findOpener(stack []opener, closer atom) (idx int, use int, ok bool) {
	for i := len(stack) - 1; i >= 0; i-- {
		op := stack[i]
		if op.char != closer.delimChar {
			continue
		}
		if !canMatch(op.count, closer.delimCount, op.canClose, closer.delimCanOpen) {
			continue
		}
		use = 1
		if op.count >= 2 && closer.delimCount >= 2 {
			use = 2
		}
		return i, use, true
	}
	return 0, 0, false
}

// canMatch implements CommonMark's "rule of 3s": when either delimiter run
// can both open and close, the sum of the two run lengths must not be a
// multiple of 3 unless both lengths are.
func canMatch(openerCount, closerCount int, openerAlsoCloses, closerAlsoOpens bool) bool {
	if !openerAlsoCloses && !closerAlsoOpens {
		return true
	}
	sum := openerCount + closerCount
	if sum%3 == 0 && !(openerCount%3 == 0 && closerCount%3 == 0) {
		return false
	}
	return true
}

func repeatByte(b byte, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = b
	}
	return string(buf)
}

// splitPlainText turns a run of literal source bytes into TEXT/NEWLINE
// tokens, isolating each newline (LF or CRLF) into its own NEWLINE token so
// the rebuilt tree keeps the same token-kind partition the block pass used.
func splitPlainText(s string) []cst.Element {
	var out []cst.Element
	start := 0
	i := 0
	for i < len(s) {
		if s[i] != '\n' {
			i++
			continue
		}
		textEnd := i
		nlStart := i
		if i > start && s[i-1] == '\r' {
			textEnd = i - 1
			nlStart = i - 1
		}
		if textEnd > start {
			out = append(out, cst.NewToken(cst.TEXT, s[start:textEnd]))
		}
		out = append(out, cst.NewToken(cst.NEWLINE, s[nlStart:i+1]))
		i++
		start = i
	}
	if start < len(s) {
		out = append(out, cst.NewToken(cst.TEXT, s[start:]))
	}
	return out
}
