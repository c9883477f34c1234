// Package blocks implements the line-driven block parser of spec.md §4.3: a
// state machine that consumes lines, dispatches each through the marker
// recognizers of this package, and drives a container stack + green-tree
// builder to produce the block-level CST plus a ReferenceRegistry. It
// generalizes the teacher's scandown.BlockStack (a bufio.SplitFunc over a
// flat Block stack) into a whole-document pass that builds a typed, nested
// cst.Node tree instead of emitting one flat token per Scan call.
package blocks

import (
	"strings"

	"github.com/jcorbin/panache/config"
	"github.com/jcorbin/panache/cst"
	"github.com/jcorbin/panache/registry"
)

// blockTags lists the HTML block-level tag names recognized by the HTML
// block opener (spec.md §4.3 cascade item 2). Grounded directly on
// _examples/ragodev-blackfriday/markdown.go's blockTags table — the same
// recognition list, carried into our HTML_BLOCK opener instead of a whole
// second HTML-rendering engine.
var blockTags = map[string]bool{
	"p": true, "dl": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ol": true, "ul": true, "del": true, "div": true, "ins": true, "pre": true, "form": true,
	"math": true, "table": true, "iframe": true, "script": true, "fieldset": true,
	"noscript": true, "blockquote": true,
}

// hashpipePrefix maps a fenced code block's language to the line-comment
// token Quarto uses for hashpipe chunk options (spec.md §4.5's GLOSSARY
// entry and SPEC_FULL.md's "Hashpipe hoisting" supplement, recovered from
// original_source/src/formatter/hashpipe.rs).
var hashpipePrefix = map[string]string{
	"python": "#|", "r": "#|", "bash": "#|", "sh": "#|",
	"javascript": "//|", "js": "//|", "typescript": "//|", "rust": "//|", "go": "//|", "c": "//|", "cpp": "//|",
	"lua": "--|", "sql": "--|",
	"matlab": "%%|", "octave": "%%|",
}

// HashpipePrefix reports the hashpipe comment token for language, if known.
func HashpipePrefix(language string) (string, bool) {
	p, ok := hashpipePrefix[strings.ToLower(language)]
	return p, ok
}

// Parser drives the block pass over a whole in-memory document.
type Parser struct {
	cfg   config.Config
	reg   *registry.Registry
	stack *Stack
	lines []Line
	pos   int

	paraLines     []Line // buffered raw lines of the currently-open paragraph
	atDocStart    bool
	lastLineBlank bool

	fenceOpen   bool
	fenceDelim  byte
	fenceWidth  int
	fenceIndent int // reset to 0 by openFence; continueFence does not read it

	codeOpen   bool
	codeIndent int

	mathOpen bool

	htmlOpen bool

	latexOpen bool
	latexEnv  string
}

// Parse runs the block pass over input, returning the block-level CST root
// and the ReferenceRegistry populated during the pass (spec.md §6's
// `parse(input, config) -> (tree, registry)` entry point, block-half).
func Parse(input string, cfg config.Config) (*cst.Node, *registry.Registry) {
	p := &Parser{
		cfg:        cfg,
		reg:        registry.New(),
		stack:      NewStack(),
		lines:      splitLines(input),
		atDocStart: true,
	}
	for p.pos = 0; p.pos < len(p.lines); p.pos++ {
		p.processLine(p.lines[p.pos])
	}
	p.closeParagraph()
	p.closeOpenLeaves()
	return p.stack.Finish(), p.reg
}

func (p *Parser) peek(offset int) (Line, bool) {
	i := p.pos + offset
	if i < 0 || i >= len(p.lines) {
		return Line{}, false
	}
	return p.lines[i], true
}

// closeOpenLeaves force-closes any fence/codeblock/math/html/latex left
// open at end of input (spec.md §7: "Unterminated fenced code / math block:
// consumes to end of input").
func (p *Parser) closeOpenLeaves() {
	if p.fenceOpen {
		p.stack.Builder.FinishNode() // CODE_CONTENT
		p.stack.Builder.FinishNode() // CODE_BLOCK
		p.fenceOpen = false
	}
	if p.codeOpen {
		p.stack.Builder.FinishNode() // CODE_CONTENT
		p.stack.Builder.FinishNode() // CODE_BLOCK
		p.codeOpen = false
	}
	if p.mathOpen {
		p.stack.Builder.FinishNode() // MATH_CONTENT
		p.stack.Builder.FinishNode() // MATH_BLOCK
		p.mathOpen = false
	}
	if p.htmlOpen {
		p.stack.Builder.FinishNode() // HTML_BLOCK
		p.htmlOpen = false
	}
	if p.latexOpen {
		p.stack.Builder.FinishNode() // LATEX_ENVIRONMENT
		p.latexOpen = false
	}
}

func (p *Parser) closeParagraph() {
	if len(p.paraLines) == 0 {
		return
	}
	p.stack.Builder.StartNode(cst.PARAGRAPH)
	for _, ln := range p.paraLines {
		p.stack.Builder.Token(cst.TEXT, ln.Text)
		if ln.Term != "" {
			p.stack.Builder.Token(cst.NEWLINE, ln.Term)
		}
	}
	p.stack.Builder.FinishNode()
	p.paraLines = nil
}

// closeParagraphAsHeading finalizes the buffered paragraph as a setext
// HEADING instead of a PARAGRAPH (spec.md §4.3 cascade item "may transform
// prior paragraph into a setext header").
func (p *Parser) closeParagraphAsHeading(level int, underline Line) {
	p.stack.Builder.StartNode(cst.HEADING)
	p.stack.Builder.StartNode(cst.HEADING_CONTENT)
	for i, ln := range p.paraLines {
		p.stack.Builder.Token(cst.TEXT, ln.Text)
		if i < len(p.paraLines)-1 && ln.Term != "" {
			p.stack.Builder.Token(cst.NEWLINE, ln.Term)
		}
	}
	p.stack.Builder.FinishNode() // HEADING_CONTENT
	if last := p.paraLines[len(p.paraLines)-1]; last.Term != "" {
		p.stack.Builder.Token(cst.NEWLINE, last.Term)
	}
	underlineText := underline.Text
	if underline.Term != "" {
		underlineText += underline.Term
	}
	p.stack.Builder.Token(cst.SETEXT_HEADING_UNDERLINE, underlineText)
	p.stack.Builder.FinishNode() // HEADING
	p.paraLines = nil
	_ = level
}

// processLine is the per-line entry point: spec.md §4.3's top-level loop.
func (p *Parser) processLine(ln Line) {
	tail := ln.Text

	// 0. A fenced div closes on a bare ":::"+ line regardless of the
	// indentation/continuation rules that govern other containers
	// (spec.md §4.3 cascade item 12).
	if p.stack.Top().Kind == ContainerFencedDiv {
		if _, ok := DivFenceClose(tail); ok {
			p.closeParagraph()
			p.stack.Builder.StartNode(cst.DIV_FENCE_CLOSE)
			p.stack.Builder.Token(cst.DIV_FENCE_MARKER, tail+ln.Term)
			p.stack.Builder.FinishNode()
			p.stack.CloseTo(p.stack.Depth() - 1)
			p.advanceDocStart(false)
			return
		}
	}

	// 1. Match the line against currently open containers, outer to inner.
	matchedDepth, remaining := p.matchContainers(tail)

	blank := strings.TrimSpace(remaining) == ""

	// 2. Continuation of an already-open multi-line leaf takes priority
	// over closing containers / the dispatch cascade, so that (for
	// example) a blank line inside a fenced code block is code content,
	// not a container-closing blank line.
	if matchedDepth == p.stack.Depth() {
		if p.fenceOpen {
			p.continueFence(remaining, ln.Term)
			p.advanceDocStart(blank)
			return
		}
		if p.mathOpen {
			p.continueMath(remaining, ln.Term)
			p.advanceDocStart(blank)
			return
		}
		if p.latexOpen {
			p.continueLatex(remaining, ln.Term)
			p.advanceDocStart(blank)
			return
		}
		if p.htmlOpen {
			if blank {
				p.stack.Builder.FinishNode()
				p.htmlOpen = false
			} else {
				p.appendRawLine(remaining, ln.Term)
				p.advanceDocStart(blank)
				return
			}
		}
		if p.codeOpen {
			indentCols, rest := IndentWidth(remaining, p.codeIndent)
			if indentCols >= p.codeIndent || blank {
				p.appendIndentedCodeLine(remaining, rest, indentCols, ln.Term)
				p.advanceDocStart(blank)
				return
			}
			p.closeIndentedCode()
		}
	}

	// 3. Lazy paragraph continuation: if containers didn't fully match but
	// a paragraph is open and this line isn't itself a block opener, keep
	// the containers open and treat the line as paragraph continuation
	// (spec.md §4.3's "Lazy continuation").
	if matchedDepth < p.stack.Depth() && len(p.paraLines) > 0 && !p.looksLikeBlockOpener(remaining) && !blank {
		p.paraLines = append(p.paraLines, Line{Text: remaining, Term: ln.Term})
		p.advanceDocStart(blank)
		return
	}

	// 4. Close whatever containers didn't match (and any open paragraph,
	// since its enclosing containers are changing).
	if matchedDepth < p.stack.Depth() {
		p.closeParagraph()
		p.stack.CloseTo(matchedDepth)
	}

	// 5. Blank line: close paragraph, emit BLANK_LINE, done.
	if blank {
		p.closeParagraph()
		p.stack.Builder.Token(cst.BLANK_LINE, remaining+ln.Term)
		p.advanceDocStart(blank)
		return
	}

	// 6. Run the full dispatch cascade against the remaining content.
	p.dispatch(remaining, ln.Term)
	p.advanceDocStart(blank)
}

func (p *Parser) advanceDocStart(blank bool) {
	p.atDocStart = p.atDocStart && blank
	p.lastLineBlank = blank
}

func (p *Parser) appendRawLine(text, term string) {
	p.stack.Builder.Token(cst.HTML_TEXT, text+term)
}

func (p *Parser) appendIndentedCodeLine(remaining, rest string, indentCols int, term string) {
	if indentCols > 0 {
		p.stack.Builder.Token(cst.WHITESPACE, remaining[:len(remaining)-len(rest)])
	}
	p.stack.Builder.Token(cst.TEXT, rest)
	if term != "" {
		p.stack.Builder.Token(cst.NEWLINE, term)
	}
}

func (p *Parser) closeIndentedCode() {
	p.stack.Builder.FinishNode() // CODE_CONTENT
	p.stack.Builder.FinishNode() // CODE_BLOCK
	p.codeOpen = false
}

// matchContainers walks the open container stack outer-to-inner (skipping
// the DOCUMENT root at index 0), consuming each container's required prefix
// from tail. It returns the depth at which matching stopped (== Depth() if
// every open container matched) and whatever of tail remains unconsumed.
func (p *Parser) matchContainers(tail string) (matchedDepth int, remaining string) {
	depth := p.stack.Depth()
	for i := 1; i < depth; i++ {
		c := p.stack.At(i)
		switch c.Kind {
		case ContainerBlockQuote:
			indentText, afterIndent := splitIndentPrefix(tail, 3)
			marker, rest, ok := BlockquoteMarker(afterIndent)
			if !ok {
				return i, tail
			}
			if indentText != "" {
				p.stack.Builder.Token(cst.WHITESPACE, indentText)
			}
			p.stack.Builder.Token(cst.BLOCKQUOTE_MARKER, marker)
			tail = rest
		case ContainerListItem:
			if strings.TrimSpace(tail) == "" {
				continue
			}
			hi := c.ContentCol
			n, rest := IndentWidth(tail, hi)
			if n < hi {
				return i, tail
			}
			if consumed := tail[:len(tail)-len(rest)]; consumed != "" {
				p.stack.Builder.Token(cst.WHITESPACE, consumed)
			}
			tail = rest
		case ContainerDefinition:
			if strings.TrimSpace(tail) == "" {
				continue
			}
			hi := c.ContentCol
			n, rest := IndentWidth(tail, hi)
			if n < hi {
				return i, tail
			}
			if consumed := tail[:len(tail)-len(rest)]; consumed != "" {
				p.stack.Builder.Token(cst.WHITESPACE, consumed)
			}
			tail = rest
		case ContainerFootnoteDefinition:
			if strings.TrimSpace(tail) == "" {
				continue
			}
			hi := c.ContentCol
			n, rest := IndentWidth(tail, hi)
			if n < hi {
				return i, tail
			}
			if consumed := tail[:len(tail)-len(rest)]; consumed != "" {
				p.stack.Builder.Token(cst.WHITESPACE, consumed)
			}
			tail = rest
		default:
			// ContainerList, ContainerDefinitionItem, ContainerDefinitionList:
			// always continue, no consumption required.
		}
	}
	return depth, tail
}

// splitIndentPrefix splits off up to limit columns of leading space/tab
// indent, returning it verbatim (for a WHITESPACE token) along with the
// remaining tail.
func splitIndentPrefix(line string, limit int) (indent, tail string) {
	_, t := IndentWidth(line, limit)
	return line[:len(line)-len(t)], t
}

func (p *Parser) looksLikeBlockOpener(tail string) bool {
	if _, _, ok := ATXHeading(tail); ok {
		return true
	}
	if HorizontalRule(tail) {
		return true
	}
	if _, _, _, ok := FenceOpen(tail); ok {
		return true
	}
	if _, ok := RecognizeListMarker(tail, p.cfg.Extensions.FancyLists, p.cfg.Extensions.ExampleLists); ok {
		return true
	}
	if n, _ := IndentWidth(tail, 3); n < 3 {
		if _, _, ok := BlockquoteMarker(tail[n:]); ok {
			return true
		}
	}
	return false
}
