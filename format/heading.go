package format

import (
	"strings"

	sanitizedanchorname "github.com/shurcooL/sanitized_anchor_name"

	"github.com/jcorbin/panache/cst"
)

// formatHeading renders an ATX or setext HEADING as ATX form ("#"*level,
// one space, the unwrapped single-line content), always followed by the
// required blank line (spec.md §4.5). A trailing explicit "{#id ...}"
// attribute is preserved verbatim; a heading with no explicit id gets one
// synthesized via the same slugging rules Pandoc itself uses for
// auto-generated header identifiers.
func (f *formatter) formatHeading(n *cst.Node, depth int) {
	level := headingLevel(n)
	content := n.FirstChildNode(cst.HEADING_CONTENT)
	text := ""
	if content != nil {
		text = strings.TrimSpace(renderInline(content, f.cfg))
	}

	body, attr := splitTrailingAttribute(text)
	// An ATX closing sequence (a run of "#"s after a space, or alone) is
	// dropped; a "#" glued to the last word (e.g. "C#") stays.
	if trimmed := strings.TrimRight(body, "#"); trimmed != body && (trimmed == "" || strings.HasSuffix(trimmed, " ")) {
		body = strings.TrimRight(trimmed, " ")
	}
	if attr == "" {
		attr = "{#" + sanitizedanchorname.Create(body) + "}"
	}

	prefix := indent(depth)
	line := prefix + strings.Repeat("#", level) + " " + body
	if attr != "" {
		line += " " + attr
	}
	f.writeLine(line)
}

func headingLevel(n *cst.Node) int {
	for _, tok := range n.Tokens() {
		switch tok.Kind() {
		case cst.ATX_HEADING_MARKER:
			return len(strings.TrimRight(tok.Text(), " "))
		case cst.SETEXT_HEADING_UNDERLINE:
			if strings.HasPrefix(strings.TrimSpace(tok.Text()), "=") {
				return 1
			}
			return 2
		}
	}
	return 1
}

// splitTrailingAttribute splits a trailing "{#id .class key=val}" heading
// attribute block off of text, if present.
func splitTrailingAttribute(text string) (body, attr string) {
	text = strings.TrimRight(text, " ")
	if !strings.HasSuffix(text, "}") {
		return text, ""
	}
	depth := 0
	for i := len(text) - 1; i >= 0; i-- {
		switch text[i] {
		case '}':
			depth++
		case '{':
			depth--
			if depth == 0 {
				return strings.TrimRight(text[:i], " "), text[i:]
			}
		}
	}
	return text, ""
}
