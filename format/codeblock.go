package format

import (
	"strings"

	"github.com/jcorbin/panache/blocks"
	"github.com/jcorbin/panache/config"
	"github.com/jcorbin/panache/cst"
)

// formatCodeBlock renders a fenced or indented CODE_BLOCK as a fence in the
// configured style, with the fence length widened to the longest
// fence-character run appearing in the block's own content plus one, never
// shorter than the configured minimum (spec.md §4.5's fence-normalization
// rule; CommonMark requires this so an embedded run of the fence character
// can never be mistaken for the closing fence).
func (f *formatter) formatCodeBlock(n *cst.Node, depth int) {
	prefix := indent(depth)
	content := codeBlockContent(n)
	info := codeBlockInfo(n)

	fenceChar := byte('`')
	if f.cfg.CodeBlocks.FenceStyle == config.FenceStyleTilde {
		fenceChar = '~'
	} else if f.cfg.CodeBlocks.FenceStyle == config.FenceStylePreserve {
		if open := n.FirstChildNode(cst.CODE_FENCE_OPEN); open != nil {
			for _, tok := range open.Tokens() {
				if tok.Kind() == cst.CODE_FENCE_MARKER && len(tok.Text()) > 0 {
					fenceChar = tok.Text()[0]
				}
			}
		}
	}

	if overridden, ok := f.overrides[content]; ok {
		content = overridden
	}
	if lang := codeLanguage(info); lang != "" {
		if hp, ok := blocks.HashpipePrefix(lang); ok {
			content = hoistHashpipeOptions(content, hp)
		}
	}

	// Fence length is derived from the final (possibly overridden/hoisted)
	// content, never the original source, so a formatter override that
	// introduces its own run of the fence character still gets a fence
	// long enough to stay unambiguous.
	longestRun := longestByteRun(content, fenceChar)
	fenceLen := longestRun + 1
	if fenceLen < f.cfg.CodeBlocks.MinFenceLength {
		fenceLen = f.cfg.CodeBlocks.MinFenceLength
	}
	fence := strings.Repeat(string(fenceChar), fenceLen)

	openLine := prefix + fence
	if info != "" {
		openLine += normalizeCodeInfo(info, f.cfg.CodeBlocks.AttributeStyle)
	}
	f.writeLine(openLine)
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		if line == "" {
			f.writeLine("")
			continue
		}
		f.writeLine(prefix + line)
	}
	f.writeLine(prefix + fence)
}

func codeBlockContent(n *cst.Node) string {
	var b strings.Builder
	if body := n.FirstChildNode(cst.CODE_CONTENT); body != nil {
		b.WriteString(body.Text())
	}
	return b.String()
}

func codeBlockInfo(n *cst.Node) string {
	open := n.FirstChildNode(cst.CODE_FENCE_OPEN)
	if open == nil {
		return ""
	}
	for _, tok := range open.Tokens() {
		if tok.Kind() == cst.CODE_INFO {
			return strings.TrimSpace(tok.Text())
		}
	}
	return ""
}

// codeLanguage extracts the bare language word from a code-block info
// string, whether written as Pandoc attributes ("{.python}") or a bare word
// ("python").
func codeLanguage(info string) string {
	if strings.HasPrefix(info, "{") {
		inner := strings.Trim(info, "{}")
		fields := strings.Fields(inner)
		if len(fields) == 0 {
			return ""
		}
		return strings.TrimPrefix(fields[0], ".")
	}
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// hoistHashpipeOptions moves every "<prefix> key: value" chunk-option
// comment line to immediately follow the fence (Quarto/RMarkdown's
// hashpipe convention), preserving their relative order, and normalizes
// interior spacing to exactly one space after the prefix and after the
// colon.
func hoistHashpipeOptions(content, prefix string) string {
	lines := strings.Split(content, "\n")
	var options, rest []string
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, prefix) {
			options = append(options, normalizeHashpipeLine(trimmed, prefix))
			continue
		}
		rest = append(rest, line)
	}
	if len(options) == 0 {
		return content
	}
	return strings.Join(append(options, rest...), "\n")
}

func normalizeHashpipeLine(line, prefix string) string {
	rest := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	key, value, ok := strings.Cut(rest, ":")
	if !ok {
		return prefix + " " + rest
	}
	return prefix + " " + strings.TrimSpace(key) + ": " + strings.TrimSpace(value)
}

func longestByteRun(s string, b byte) int {
	longest, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			cur++
			if cur > longest {
				longest = cur
			}
		} else {
			cur = 0
		}
	}
	return longest
}

// normalizeCodeInfo renders an info string either as a bare language word
// or as a Pandoc "{.lang .attr key=val}" attribute block, regardless of
// which form the source used.
func normalizeCodeInfo(info string, style config.AttributeStyle) string {
	var lang string
	var rest []string
	if strings.HasPrefix(info, "{") {
		fields := strings.Fields(strings.Trim(info, "{}"))
		if len(fields) == 0 {
			return ""
		}
		lang = strings.TrimPrefix(fields[0], ".")
		rest = fields[1:]
	} else {
		fields := strings.Fields(info)
		if len(fields) == 0 {
			return ""
		}
		lang, rest = fields[0], fields[1:]
	}

	if style == config.AttributeStyleBare && len(rest) == 0 {
		return " " + lang
	}
	var b strings.Builder
	b.WriteString(" {.")
	b.WriteString(lang)
	for _, r := range rest {
		b.WriteByte(' ')
		b.WriteString(r)
	}
	b.WriteByte('}')
	return b.String()
}
