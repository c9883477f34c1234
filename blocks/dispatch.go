package blocks

import (
	"strings"

	"github.com/jcorbin/panache/cst"
)

// dispatch implements spec.md §4.3 step 3's ordered recognizer cascade
// against the remaining (container-stripped) content of one line. The
// first matching recognizer wins.
func (p *Parser) dispatch(tail string, term string) {
	// 1. YAML metadata block, document-top-level only.
	if p.atDocStart && p.pos == 0 && tail == "---" {
		if p.tryYAMLMetadata(term) {
			return
		}
	}

	// 1b. Blockquote opening: any "> " prefixes remaining after matchContainers
	// already consumed the currently-open containers belong to newly-opened
	// nested BLOCKQUOTEs (spec.md §4.3 cascade item 1, handling "> > nested"
	// style same-line nesting).
	for {
		indentText, afterIndent := splitIndentPrefix(tail, 3)
		marker, rest, ok := BlockquoteMarker(afterIndent)
		if !ok {
			break
		}
		p.closeParagraph()
		p.stack.Push(Container{Kind: ContainerBlockQuote, Node: cst.BLOCKQUOTE})
		if indentText != "" {
			p.stack.Builder.Token(cst.WHITESPACE, indentText)
		}
		p.stack.Builder.Token(cst.BLOCKQUOTE_MARKER, marker)
		tail = rest
	}
	if strings.TrimSpace(tail) == "" {
		p.closeParagraph()
		p.stack.Builder.Token(cst.BLANK_LINE, tail+term)
		return
	}

	// 1c. Setext heading underline: takes priority over the horizontal-rule
	// recognizer below it, since a lone "---"/"===" line directly under a
	// single-line open paragraph converts that paragraph into a heading
	// rather than starting a rule (matches Pandoc/CommonMark's
	// precedence — only a bare "---" with no preceding paragraph is a rule).
	if level, ok := SetextUnderline(tail); ok && len(p.paraLines) == 1 {
		p.closeParagraphAsHeading(level, Line{Text: tail, Term: term})
		return
	}

	// 2. HTML block opening.
	if p.cfg.Extensions.RawHTML && p.tryHTMLBlockOpen(tail, term) {
		return
	}

	// 3. Tables, tried in spec.md §9's "grid > multiline > pipe > simple"
	// priority order, since the simple/multiline recognizers are heuristic
	// enough that some inputs would otherwise match more than one.
	if p.tryGridTable(tail, term) {
		return
	}
	if p.tryMultilineTable(tail, term) {
		return
	}
	if p.tryPipeTable(tail, term) {
		return
	}
	if p.trySimpleTable(tail, term) {
		return
	}

	// 4. Horizontal rule.
	if HorizontalRule(tail) {
		p.closeParagraph()
		p.emitHorizontalRule(tail, term)
		return
	}

	// 5. ATX heading.
	if level, width, ok := ATXHeading(tail); ok {
		p.closeParagraph()
		p.emitATXHeading(level, width, tail, term)
		return
	}

	// 6. Fenced code block opening.
	if delim, width, info, ok := FenceOpen(tail); ok {
		p.closeParagraph()
		p.openFence(delim, width, info, tail, term)
		return
	}

	// 7. Footnote definition.
	if p.cfg.Extensions.Footnotes {
		if id, _, ok := FootnoteDefinitionLine(tail); ok {
			p.closeParagraph()
			p.openFootnoteDefinition(id, tail[len(id)+4:], term)
			return
		}
	}

	// 8. Reference definition.
	if label, url, title, ok := ReferenceDefinitionLine(tail); ok {
		p.closeParagraph()
		p.reg.Define(label, url, title)
		p.emitReferenceDefinition(tail, term)
		return
	}

	// 9. Indented code (4+ spaces), unless a paragraph is open (lazy rule).
	if len(p.paraLines) == 0 {
		if indentCols, rest := IndentWidth(tail, 4); indentCols >= 4 {
			p.openIndentedCode(tail, rest, indentCols, term)
			return
		}
	}

	// 10. Display math fence.
	if DisplayMathFenceLine(tail) {
		p.closeParagraph()
		p.openMathBlock(tail, term)
		return
	}

	// 11. Fenced div opening.
	if p.cfg.Extensions.FencedDivs {
		if width, info, ok := DivFenceOpen(tail); ok {
			p.closeParagraph()
			p.openFencedDiv(width, info, tail, term)
			return
		}
	}

	// 12. Fenced div closing: handled with priority in processLine while a
	// div is open. With no div open, a bare ":::" line is taken by item 11
	// above and opens a FENCED_DIV with no info (when FencedDivs is off it
	// falls through to the items below).

	// 13. LaTeX environment.
	if p.cfg.Extensions.RawTex {
		if env, ok := latexBeginEnv(tail); ok {
			p.closeParagraph()
			p.openLatexEnvironment(env, tail, term)
			return
		}
	}

	// 14. List marker.
	if p.tryOpenOrContinueList(tail, term) {
		return
	}

	// 15. Definition list.
	if p.tryDefinitionMarker(tail, term) {
		return
	}

	// 16. Line block.
	if p.cfg.Extensions.LineBlocks {
		if rest, ok := LineBlockMarker(tail); ok {
			p.closeParagraph()
			p.emitLineBlockLine(rest, tail, term)
			return
		}
	}

	// 17. Paragraph (default): append to an existing open paragraph's
	// buffer or start a new one.
	p.paraLines = append(p.paraLines, Line{Text: tail, Term: term})
}

func (p *Parser) emitHorizontalRule(tail, term string) {
	p.stack.Builder.Token(cst.HORIZONTAL_RULE, tail+term)
}

func (p *Parser) emitATXHeading(level, width int, tail, term string) {
	p.stack.Builder.StartNode(cst.HEADING)
	p.stack.Builder.Token(cst.ATX_HEADING_MARKER, tail[:width])
	p.stack.Builder.StartNode(cst.HEADING_CONTENT)
	content := tail[width:]
	// trailing closing "#"s (ATX may optionally close with a run of #s,
	// followed by optional spaces) are kept as plain TEXT for losslessness;
	// the formatter strips them on re-emission rather than the parser
	// inventing a dedicated token kind spec.md's Kind list doesn't name.
	if content != "" {
		p.stack.Builder.Token(cst.TEXT, content)
	}
	p.stack.Builder.FinishNode() // HEADING_CONTENT
	if term != "" {
		p.stack.Builder.Token(cst.NEWLINE, term)
	}
	p.stack.Builder.FinishNode() // HEADING
}

func (p *Parser) emitReferenceDefinition(tail, term string) {
	p.stack.Builder.StartNode(cst.REFERENCE_DEFINITION)
	p.stack.Builder.Token(cst.TEXT, tail)
	if term != "" {
		p.stack.Builder.Token(cst.NEWLINE, term)
	}
	p.stack.Builder.FinishNode()
}

func (p *Parser) openFootnoteDefinition(id, rest, term string) {
	p.reg.DefineFootnote(id)
	p.stack.Push(Container{Kind: ContainerFootnoteDefinition, Node: cst.FOOTNOTE_DEFINITION, ContentCol: 4, FootnoteID: id})
	p.stack.Builder.Token(cst.FOOTNOTE_REFERENCE, "[^"+id+"]:")
	if rest != "" {
		p.paraLines = append(p.paraLines, Line{Text: rest, Term: term})
	} else if term != "" {
		p.stack.Builder.Token(cst.NEWLINE, term)
	}
}

func (p *Parser) openIndentedCode(tail, rest string, indentCols int, term string) {
	p.codeOpen = true
	p.codeIndent = 4
	p.stack.Builder.StartNode(cst.CODE_BLOCK)
	p.stack.Builder.StartNode(cst.CODE_CONTENT)
	p.appendIndentedCodeLine(tail, rest, indentCols, term)
}

func (p *Parser) openFence(delim byte, width int, info, tail, term string) {
	p.fenceOpen = true
	p.fenceDelim = delim
	p.fenceWidth = width
	p.fenceIndent = 0
	p.stack.Builder.StartNode(cst.CODE_BLOCK)
	p.stack.Builder.StartNode(cst.CODE_FENCE_OPEN)
	p.stack.Builder.Token(cst.CODE_FENCE_MARKER, strings.Repeat(string(delim), width))
	if gap := tail[width : len(tail)-len(info)]; gap != "" {
		p.stack.Builder.Token(cst.WHITESPACE, gap)
	}
	if info != "" {
		p.stack.Builder.Token(cst.CODE_INFO, info)
	}
	if term != "" {
		p.stack.Builder.Token(cst.NEWLINE, term)
	}
	p.stack.Builder.FinishNode() // CODE_FENCE_OPEN
	p.stack.Builder.StartNode(cst.CODE_CONTENT)
}

func (p *Parser) continueFence(tail, term string) {
	if FenceClose(tail, p.fenceDelim, p.fenceWidth) {
		p.stack.Builder.FinishNode() // CODE_CONTENT
		p.stack.Builder.StartNode(cst.CODE_FENCE_CLOSE)
		p.stack.Builder.Token(cst.CODE_FENCE_MARKER, tail)
		if term != "" {
			p.stack.Builder.Token(cst.NEWLINE, term)
		}
		p.stack.Builder.FinishNode() // CODE_FENCE_CLOSE
		p.stack.Builder.FinishNode() // CODE_BLOCK
		p.fenceOpen = false
		return
	}
	p.stack.Builder.Token(cst.TEXT, tail)
	if term != "" {
		p.stack.Builder.Token(cst.NEWLINE, term)
	}
}

func (p *Parser) openMathBlock(tail, term string) {
	p.mathOpen = true
	p.stack.Builder.StartNode(cst.MATH_BLOCK)
	p.stack.Builder.Token(cst.DISPLAY_MATH_MARKER, tail)
	if term != "" {
		p.stack.Builder.Token(cst.NEWLINE, term)
	}
	p.stack.Builder.StartNode(cst.MATH_CONTENT)
}

func (p *Parser) continueMath(tail, term string) {
	if DisplayMathFenceLine(tail) {
		p.stack.Builder.FinishNode() // MATH_CONTENT
		p.stack.Builder.Token(cst.DISPLAY_MATH_MARKER, tail+term)
		p.stack.Builder.FinishNode() // MATH_BLOCK
		p.mathOpen = false
		return
	}
	p.stack.Builder.Token(cst.TEXT, tail)
	if term != "" {
		p.stack.Builder.Token(cst.NEWLINE, term)
	}
}

func (p *Parser) tryHTMLBlockOpen(tail, term string) bool {
	if len(tail) < 2 || tail[0] != '<' {
		return false
	}
	rest := tail[1:]
	rest = strings.TrimPrefix(rest, "/")
	i := 0
	for i < len(rest) && isAlphaLetter(rest[i]) {
		i++
	}
	if i == 0 {
		return false
	}
	tag := strings.ToLower(rest[:i])
	if !blockTags[tag] {
		return false
	}
	p.closeParagraph()
	p.htmlOpen = true
	p.stack.Builder.StartNode(cst.HTML_BLOCK)
	p.appendRawLine(tail, term)
	return true
}

func latexBeginEnv(tail string) (string, bool) {
	const prefix = "\\begin{"
	if !strings.HasPrefix(tail, prefix) {
		return "", false
	}
	rest := tail[len(prefix):]
	end := strings.IndexByte(rest, '}')
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

func (p *Parser) openLatexEnvironment(env, tail, term string) {
	p.latexOpen = true
	p.latexEnv = env
	p.stack.Builder.StartNode(cst.LATEX_ENVIRONMENT)
	p.stack.Builder.Token(cst.LATEX_COMMAND, tail)
	if term != "" {
		p.stack.Builder.Token(cst.NEWLINE, term)
	}
}

func (p *Parser) continueLatex(tail, term string) {
	expected := "\\end{" + p.latexEnv + "}"
	if strings.TrimRight(tail, " \t") == expected {
		p.stack.Builder.Token(cst.LATEX_COMMAND, tail)
		if term != "" {
			p.stack.Builder.Token(cst.NEWLINE, term)
		}
		p.stack.Builder.FinishNode() // LATEX_ENVIRONMENT
		p.latexOpen = false
		return
	}
	p.stack.Builder.Token(cst.TEXT, tail)
	if term != "" {
		p.stack.Builder.Token(cst.NEWLINE, term)
	}
}

func (p *Parser) tryYAMLMetadata(firstTerm string) bool {
	p.stack.Builder.StartNode(cst.YAML_METADATA)
	p.stack.Builder.Token(cst.TEXT, "---"+firstTerm)
	for {
		next, ok := p.peek(1)
		if !ok {
			break
		}
		p.pos++
		trimmed := strings.TrimRight(next.Text, " \t")
		if trimmed == "---" || trimmed == "..." {
			p.stack.Builder.Token(cst.TEXT, next.Text+next.Term)
			break
		}
		p.stack.Builder.Token(cst.TEXT, next.Text+next.Term)
	}
	p.stack.Builder.FinishNode()
	return true
}

func (p *Parser) emitLineBlockLine(content, tail, term string) {
	p.stack.Builder.StartNode(cst.LINE_BLOCK_LINE)
	p.stack.Builder.Token(cst.LINE_BLOCK_MARKER, tail[:len(tail)-len(content)])
	p.stack.Builder.Token(cst.TEXT, content)
	if term != "" {
		p.stack.Builder.Token(cst.NEWLINE, term)
	}
	p.stack.Builder.FinishNode()
}
