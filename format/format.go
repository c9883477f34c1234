// Package format implements spec.md §4.5: a depth-first walk over a
// completed CST (block pass plus inline pass) that emits normalized
// Markdown text. It generalizes the teacher's debug fmt.Formatter output
// (scandown/fmt.go's BlockStack.Format/Block.Format, which render a
// diagnostic view of the parse stack) into a real text renderer that
// produces Markdown rather than a trace of parser state.
package format

import (
	"errors"
	"strings"

	"github.com/jcorbin/panache/config"
	"github.com/jcorbin/panache/cst"
)

// CodeBlockOverrides is the external-formatter seam spec.md §5 describes: a
// lookup of already-formatted code content the formatter consults instead
// of reproducing a code block's content verbatim. Populating this map (by
// running per-language formatter subprocesses) is the excluded external
// collaborator; Format only consumes it.
type CodeBlockOverrides map[string]string

// formatter carries the mutable render state for one Format call.
type formatter struct {
	cfg       config.Config
	overrides CodeBlockOverrides
	out       strings.Builder
	blankRun  bool // true once a blank separator line has just been written
}

// Format renders tree (the output of blocks.Parse followed by inline.Parse)
// to normalized Markdown text per cfg. A nil tree is an error.
func Format(tree *cst.Node, cfg config.Config, overrides CodeBlockOverrides) (string, error) {
	if tree == nil {
		return "", errors.New("format: nil tree")
	}
	f := &formatter{cfg: cfg, overrides: overrides}
	f.formatSiblings(tree.Children(), 0)
	text := f.out.String()
	if f.cfg.LineEnding == config.LineEndingCRLF {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	return text, nil
}

// writeLine appends one rendered line (s with no trailing newline) to the
// output, collapsing runs of blank lines when cfg.BlankLines says to.
func (f *formatter) writeLine(s string) {
	if s == "" {
		if f.cfg.BlankLines == config.BlankLinesCollapse && f.blankRun {
			return
		}
		f.blankRun = true
		f.out.WriteByte('\n')
		return
	}
	f.blankRun = false
	f.out.WriteString(s)
	f.out.WriteByte('\n')
}

func (f *formatter) blank() { f.writeLine("") }

// formatSiblings renders a sequence of sibling block-level elements
// (children of DOCUMENT, BLOCKQUOTE, a list item, etc), inserting a blank
// separator line between consecutive blocks the way Pandoc's own writer
// does, except between adjacent LINE_BLOCK_LINE siblings, which stay
// together as one line block.
func (f *formatter) formatSiblings(elems []cst.Element, depth int) {
	prevKind := cst.Invalid
	first := true
	for _, e := range elems {
		if e.Kind() == cst.BLANK_LINE {
			continue
		}
		// Structural tokens (BLOCKQUOTE_MARKER, LIST_MARKER, TASK_CHECKBOX,
		// FOOTNOTE_REFERENCE, leading WHITESPACE, and the like) are emitted
		// as direct children right alongside the content nodes they
		// introduce; formatElement renders them as part of their owning
		// block (or not at all), so they must not count as a sibling block
		// here, or they'd throw off the blank-separator bookkeeping.
		if _, isNode := e.(*cst.Node); !isNode && e.Kind() != cst.HORIZONTAL_RULE {
			continue
		}
		if !first && !(prevKind == cst.LINE_BLOCK_LINE && e.Kind() == cst.LINE_BLOCK_LINE) {
			f.blank()
		}
		first = false
		f.formatElement(e, depth)
		prevKind = e.Kind()
	}
}

func (f *formatter) formatElement(e cst.Element, depth int) {
	if e.Kind() == cst.HORIZONTAL_RULE {
		f.writeLine(indent(depth) + "---")
		return
	}
	n, ok := e.(*cst.Node)
	if !ok {
		return
	}
	switch n.Kind() {
	case cst.PARAGRAPH:
		f.formatParagraph(n, depth)
	case cst.HEADING:
		f.formatHeading(n, depth)
	case cst.BLOCKQUOTE:
		f.formatBlockquote(n, depth)
	case cst.LIST:
		f.formatList(n, depth)
	case cst.DEFINITION_LIST:
		f.formatDefinitionList(n, depth)
	case cst.CODE_BLOCK:
		f.formatCodeBlock(n, depth)
	case cst.MATH_BLOCK:
		f.formatMathBlock(n, depth)
	case cst.FENCED_DIV:
		f.formatFencedDiv(n, depth)
	case cst.PIPE_TABLE:
		f.formatPipeTable(n, depth)
	case cst.GRID_TABLE, cst.MULTILINE_TABLE, cst.SIMPLE_TABLE:
		f.formatLineOrientedTable(n, depth)
	case cst.FOOTNOTE_DEFINITION:
		f.formatFootnoteDefinition(n, depth)
	case cst.LINE_BLOCK_LINE:
		f.formatLineBlockLine(n, depth)
	case cst.REFERENCE_DEFINITION:
		f.writeLine(indent(depth) + strings.TrimRight(renderInline(n, f.cfg), "\n"))
	case cst.YAML_METADATA:
		f.writeLine(strings.TrimRight(n.Text(), "\n"))
	case cst.HTML_BLOCK:
		f.writeLine(strings.TrimRight(n.Text(), "\n"))
	case cst.LATEX_ENVIRONMENT:
		f.writeLine(strings.TrimRight(n.Text(), "\n"))
	default:
		f.formatSiblings(n.Children(), depth)
	}
}

// indent returns a content-indent prefix of depth*2 spaces, the generic
// nested-container indent spec.md §4.5 uses for blockquote/list recursion
// when a more specific per-kind indent (hanging indent, marker width) does
// not apply.
func indent(depth int) string { return strings.Repeat("  ", depth) }
