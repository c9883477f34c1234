package format

import (
	"strings"

	"github.com/jcorbin/panache/cst"
)

type columnAlign int

const (
	alignNone columnAlign = iota
	alignLeft
	alignRight
	alignCenter
)

// formatPipeTable renders a PIPE_TABLE with per-column widths computed from
// the formatted cell contents and alignment markers derived from the
// separator row (spec.md §4.5's pipe-table rule). A caption, if present,
// is rendered with the normalized "Table: " prefix Pandoc uses, in
// whichever position (before or after the table body) it held in the
// source.
func (f *formatter) formatPipeTable(n *cst.Node, depth int) {
	prefix := indent(depth)

	var headerCells []string
	var aligns []columnAlign
	var rows [][]string
	var captionBefore, captionAfter string

	for _, c := range n.ChildNodes() {
		switch c.Kind() {
		case cst.TABLE_HEADER:
			headerCells = splitTableRow(c.Text())
		case cst.TABLE_SEPARATOR:
			aligns = parseTableAlignment(c.Text())
		case cst.TABLE_ROW:
			rows = append(rows, splitTableRow(c.Text()))
		case cst.TABLE_CAPTION:
			cap := strings.TrimSpace(c.Text())
			switch {
			case strings.HasPrefix(cap, "Table:"):
				cap = strings.TrimSpace(cap[len("Table:"):])
			case strings.HasPrefix(cap, ":"):
				cap = strings.TrimSpace(cap[1:])
			}
			if len(rows) == 0 {
				captionBefore = cap
			} else {
				captionAfter = cap
			}
		}
	}

	cols := len(headerCells)
	for len(aligns) < cols {
		aligns = append(aligns, alignNone)
	}

	widths := make([]int, cols)
	for i, c := range headerCells {
		if w := len([]rune(c)); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := len([]rune(row[i])); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i, w := range widths {
		if w < 3 {
			widths[i] = 3
		}
	}

	if captionBefore != "" {
		f.writeLine(prefix + "Table: " + captionBefore)
		f.blank()
	}

	f.writeLine(prefix + renderTableRow(headerCells, widths, aligns))
	f.writeLine(prefix + renderTableSeparator(widths, aligns))
	for _, row := range rows {
		f.writeLine(prefix + renderTableRow(row, widths, aligns))
	}

	if captionAfter != "" {
		f.blank()
		f.writeLine(prefix + "Table: " + captionAfter)
	}
}

// formatLineOrientedTable renders a GRID_TABLE, MULTILINE_TABLE, or
// SIMPLE_TABLE verbatim, one physical line at a time. Unlike PIPE_TABLE,
// these three kinds encode their column geometry directly in the source
// layout ("+---+---+" border positions, space-aligned columns), so
// reformatting them to computed widths would mean recomputing that layout
// from scratch rather than just re-joining "|"-delimited cell text; they
// round-trip losslessly instead (spec.md §8's losslessness property still
// holds, just without PIPE_TABLE's column-width normalization).
func (f *formatter) formatLineOrientedTable(n *cst.Node, depth int) {
	prefix := indent(depth)
	for _, c := range n.ChildNodes() {
		for _, line := range strings.Split(strings.TrimRight(c.Text(), "\n"), "\n") {
			if line == "" {
				f.writeLine("")
				continue
			}
			f.writeLine(prefix + line)
		}
	}
}

func splitTableRow(line string) []string {
	line = strings.TrimRight(line, "\n")
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

func parseTableAlignment(line string) []columnAlign {
	cells := splitTableRow(line)
	out := make([]columnAlign, len(cells))
	for i, c := range cells {
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		switch {
		case left && right:
			out[i] = alignCenter
		case right:
			out[i] = alignRight
		case left:
			out[i] = alignLeft
		default:
			out[i] = alignNone
		}
	}
	return out
}

func renderTableRow(cells []string, widths []int, aligns []columnAlign) string {
	var b strings.Builder
	b.WriteByte('|')
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteByte(' ')
		b.WriteString(padCell(cell, w, aligns[i]))
		b.WriteString(" |")
	}
	return b.String()
}

func renderTableSeparator(widths []int, aligns []columnAlign) string {
	var b strings.Builder
	b.WriteByte('|')
	for i, w := range widths {
		b.WriteByte(' ')
		switch aligns[i] {
		case alignLeft:
			b.WriteByte(':')
			b.WriteString(strings.Repeat("-", w-1))
		case alignRight:
			b.WriteString(strings.Repeat("-", w-1))
			b.WriteByte(':')
		case alignCenter:
			b.WriteByte(':')
			b.WriteString(strings.Repeat("-", w-2))
			b.WriteByte(':')
		default:
			b.WriteString(strings.Repeat("-", w))
		}
		b.WriteString(" |")
	}
	return b.String()
}

func padCell(s string, width int, align columnAlign) string {
	n := len([]rune(s))
	pad := width - n
	if pad < 0 {
		pad = 0
	}
	switch align {
	case alignRight:
		return strings.Repeat(" ", pad) + s
	case alignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
