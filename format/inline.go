package format

import (
	"strings"

	"github.com/jcorbin/panache/config"
	"github.com/jcorbin/panache/cst"
)

// renderInline flattens an inline-bearing node's children into canonical
// Markdown text: emphasis/strong delimiters are normalized to the
// asterisk/double-asterisk form, shortcode interior whitespace is
// collapsed, and every other construct round-trips through its own
// existing token text (already-normalized source, since the block/inline
// passes are lossless).
func renderInline(n *cst.Node, cfg config.Config) string {
	var b strings.Builder
	renderInlineChildren(&b, n.Children(), cfg)
	return b.String()
}

func renderInlineChildren(b *strings.Builder, elems []cst.Element, cfg config.Config) {
	for _, e := range elems {
		renderInlineElement(b, e, cfg)
	}
}

func renderInlineElement(b *strings.Builder, e cst.Element, cfg config.Config) {
	switch e.Kind() {
	case cst.NEWLINE:
		b.WriteByte(' ')
		return
	case cst.EMPHASIS:
		n := e.(*cst.Node)
		b.WriteByte('*')
		renderInlineChildren(b, innerChildren(n), cfg)
		b.WriteByte('*')
		return
	case cst.STRONG:
		n := e.(*cst.Node)
		b.WriteString("**")
		renderInlineChildren(b, innerChildren(n), cfg)
		b.WriteString("**")
		return
	case cst.STRIKEOUT:
		n := e.(*cst.Node)
		b.WriteString("~~")
		renderInlineChildren(b, innerChildren(n), cfg)
		b.WriteString("~~")
		return
	case cst.SUPERSCRIPT:
		n := e.(*cst.Node)
		b.WriteByte('^')
		renderInlineChildren(b, innerChildren(n), cfg)
		b.WriteByte('^')
		return
	case cst.SUBSCRIPT:
		n := e.(*cst.Node)
		b.WriteByte('~')
		renderInlineChildren(b, innerChildren(n), cfg)
		b.WriteByte('~')
		return
	case cst.SHORTCODE:
		b.WriteString(normalizeShortcode(e.Text()))
		return
	}
	if n, ok := e.(*cst.Node); ok {
		b.WriteString(n.Text())
		return
	}
	b.WriteString(e.Text())
}

// innerChildren strips a delimiter-marker-bearing node's own open/close
// marker tokens (EMPHASIS_MARKER etc.) down to its content children, since
// renderInline re-synthesizes the markers itself in canonical form.
func innerChildren(n *cst.Node) []cst.Element {
	children := n.Children()
	out := make([]cst.Element, 0, len(children))
	for _, c := range children {
		switch c.Kind() {
		case cst.EMPHASIS_MARKER, cst.STRONG_MARKER, cst.STRIKEOUT_MARKER,
			cst.SUPERSCRIPT_MARKER, cst.SUBSCRIPT_MARKER:
			continue
		}
		out = append(out, c)
	}
	return out
}

// normalizeShortcode collapses interior whitespace runs in a Quarto
// "{{< ... >}}" shortcode to single spaces, leaving quoted string
// arguments untouched (spec.md §4.5's shortcode-normalization rule).
func normalizeShortcode(s string) string {
	var b strings.Builder
	inQuote := byte(0)
	lastWasSpace := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote != 0 {
			b.WriteByte(c)
			if c == inQuote {
				inQuote = 0
			}
			continue
		}
		if c == '"' || c == '\'' {
			inQuote = c
			b.WriteByte(c)
			lastWasSpace = false
			continue
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			if !lastWasSpace {
				b.WriteByte(' ')
			}
			lastWasSpace = true
			continue
		}
		b.WriteByte(c)
		lastWasSpace = false
	}
	return b.String()
}
