package blocks

import (
	"strings"

	"github.com/jcorbin/panache/cst"
)

// tryPipeTable implements spec.md §4.3's pipe-table recognizer: a header
// row containing "|", immediately followed by a separator row of dashes and
// colons. See tryGridTable, tryMultilineTable, and trySimpleTable for the
// other three table kinds spec.md §4.3.3 names; the priority order
// `grid > multiline > pipe > simple` from spec.md §9 is encoded by their
// call order in the dispatch cascade, not by anything in this file.
func (p *Parser) tryPipeTable(tail, term string) bool {
	// Leading "Table: caption" line (spec.md's "may precede or follow the
	// table" caption rule): a caption line, a blank line, then the header
	// and separator rows.
	if rest, ok := tableCaptionPrefix(tail); ok {
		blankLine, ok1 := p.peek(1)
		header, ok2 := p.peek(2)
		sep, ok3 := p.peek(3)
		if ok1 && strings.TrimSpace(blankLine.Text) == "" &&
			ok2 && strings.Contains(header.Text, "|") &&
			ok3 && isPipeTableSeparator(sep.Text) {

			p.closeParagraph()
			p.stack.Builder.StartNode(cst.PIPE_TABLE)

			p.stack.Builder.StartNode(cst.TABLE_CAPTION)
			p.stack.Builder.Token(cst.TABLE_CAPTION_PREFIX, tail[:len(tail)-len(rest)])
			p.stack.Builder.Token(cst.TEXT, rest)
			if term != "" {
				p.stack.Builder.Token(cst.NEWLINE, term)
			}
			p.stack.Builder.FinishNode()
			p.stack.Builder.Token(cst.BLANK_LINE, blankLine.Text+blankLine.Term)

			p.pos += 2 // advance onto the header line
			p.emitPipeTableHeaderAndBody(header, sep)

			p.stack.Builder.FinishNode() // PIPE_TABLE
			return true
		}
	}

	if !strings.Contains(tail, "|") {
		return false
	}
	next, ok := p.peek(1)
	if !ok || !isPipeTableSeparator(next.Text) {
		return false
	}

	p.closeParagraph()
	p.stack.Builder.StartNode(cst.PIPE_TABLE)
	p.emitPipeTableHeaderAndBody(Line{Text: tail, Term: term}, next)
	p.stack.Builder.FinishNode() // PIPE_TABLE
	return true
}

// emitPipeTableHeaderAndBody emits the TABLE_HEADER, TABLE_SEPARATOR, and
// TABLE_ROW children of a PIPE_TABLE, plus a trailing caption if one
// follows. p.pos must be positioned at header's line; sep is its already
// peeked (but not yet consumed) separator row.
func (p *Parser) emitPipeTableHeaderAndBody(header, sep Line) {
	p.stack.Builder.StartNode(cst.TABLE_HEADER)
	p.stack.Builder.Token(cst.TEXT, header.Text)
	if header.Term != "" {
		p.stack.Builder.Token(cst.NEWLINE, header.Term)
	}
	p.stack.Builder.FinishNode()

	p.pos++
	p.stack.Builder.StartNode(cst.TABLE_SEPARATOR)
	p.stack.Builder.Token(cst.TEXT, sep.Text)
	if sep.Term != "" {
		p.stack.Builder.Token(cst.NEWLINE, sep.Term)
	}
	p.stack.Builder.FinishNode()

	for {
		row, ok := p.peek(1)
		if !ok || strings.TrimSpace(row.Text) == "" || !strings.Contains(row.Text, "|") {
			break
		}
		p.pos++
		p.stack.Builder.StartNode(cst.TABLE_ROW)
		p.stack.Builder.Token(cst.TEXT, row.Text)
		if row.Term != "" {
			p.stack.Builder.Token(cst.NEWLINE, row.Term)
		}
		p.stack.Builder.FinishNode()
	}

	// Trailing "Table: caption" line (spec.md §4.3's pipe-table caption
	// extension): a blank line, then a line starting with "Table:"/":",
	// immediately follows the last row.
	if blankLine, ok := p.peek(1); ok && strings.TrimSpace(blankLine.Text) == "" {
		if capLine, ok := p.peek(2); ok {
			if rest, ok := tableCaptionPrefix(capLine.Text); ok {
				p.pos += 2
				p.stack.Builder.Token(cst.BLANK_LINE, blankLine.Text+blankLine.Term)
				p.stack.Builder.StartNode(cst.TABLE_CAPTION)
				p.stack.Builder.Token(cst.TABLE_CAPTION_PREFIX, capLine.Text[:len(capLine.Text)-len(rest)])
				p.stack.Builder.Token(cst.TEXT, rest)
				if capLine.Term != "" {
					p.stack.Builder.Token(cst.NEWLINE, capLine.Term)
				}
				p.stack.Builder.FinishNode()
			}
		}
	}
}

// tableCaptionPrefix recognizes a "Table: caption text" or ": caption text"
// caption line (Pandoc's pipe-table caption extension), returning the
// caption text after the prefix.
func tableCaptionPrefix(line string) (rest string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	indent := len(line) - len(trimmed)
	if indent > 3 {
		return "", false
	}
	if strings.HasPrefix(trimmed, "Table:") {
		return strings.TrimLeft(trimmed[len("Table:"):], " \t"), true
	}
	if strings.HasPrefix(trimmed, ":") {
		return strings.TrimLeft(trimmed[1:], " \t"), true
	}
	return "", false
}

// isPipeTableSeparator reports whether line is a pipe-table header
// separator row: only "-", ":", "|", spaces and tabs, with at least one
// dash.
func isPipeTableSeparator(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	hasDash := false
	for i := 0; i < len(trimmed); i++ {
		switch trimmed[i] {
		case '-':
			hasDash = true
		case ':', '|', ' ', '\t':
		default:
			return false
		}
	}
	return hasDash
}

// emitTableSeparatorLine wraps one physical line in a TABLE_SEPARATOR node
// (a grid-table border or a multiline/simple-table column separator).
func (p *Parser) emitTableSeparatorLine(text, term string) {
	p.stack.Builder.StartNode(cst.TABLE_SEPARATOR)
	p.stack.Builder.Token(cst.TEXT, text)
	if term != "" {
		p.stack.Builder.Token(cst.NEWLINE, term)
	}
	p.stack.Builder.FinishNode()
}

// emitTableLines wraps one or more physical lines (a grid-table cell band,
// or a multiline-table row that spans several lines) in a single node of
// kind, one TEXT+NEWLINE pair per line.
func (p *Parser) emitTableLines(kind cst.Kind, lines []Line) {
	p.stack.Builder.StartNode(kind)
	for _, l := range lines {
		p.stack.Builder.Token(cst.TEXT, l.Text)
		if l.Term != "" {
			p.stack.Builder.Token(cst.NEWLINE, l.Term)
		}
	}
	p.stack.Builder.FinishNode()
}

// gridBorderChar reports whether line is a grid-table border row
// ("+---+---+" or "+===+===+"), returning the fill character used between
// the "+" junctions.
func gridBorderChar(line string) (fill byte, ok bool) {
	t := strings.TrimRight(line, " \t")
	if len(t) < 2 || t[0] != '+' || t[len(t)-1] != '+' {
		return 0, false
	}
	body := t[1 : len(t)-1]
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '+':
			continue
		case '-', '=':
			if fill == 0 {
				fill = body[i]
			} else if body[i] != fill {
				return 0, false
			}
		default:
			return 0, false
		}
	}
	if fill == 0 {
		return 0, false
	}
	return fill, true
}

// tryGridTable implements spec.md §4.3.3's grid-table recognizer: a
// "+---+---+" border, one or more "|"-delimited header lines, a
// "+===+===+" (or "+---+---+") header/body separator border, then any
// number of "|"-delimited row line bands each closed by its own border.
func (p *Parser) tryGridTable(tail, term string) bool {
	fill, ok := gridBorderChar(tail)
	if !ok || fill != '-' {
		return false
	}
	next, ok := p.peek(1)
	if !ok || !strings.HasPrefix(strings.TrimLeft(next.Text, " \t"), "|") {
		return false
	}

	p.closeParagraph()
	p.stack.Builder.StartNode(cst.GRID_TABLE)
	p.emitTableSeparatorLine(tail, term)

	p.emitTableLines(cst.TABLE_HEADER, p.collectGridContentLines())

	if sep, ok := p.peek(1); ok {
		if _, isBorder := gridBorderChar(sep.Text); isBorder {
			p.pos++
			p.emitTableSeparatorLine(sep.Text, sep.Term)
		}
	}

	for {
		rowLines := p.collectGridContentLines()
		if len(rowLines) == 0 {
			break
		}
		p.emitTableLines(cst.TABLE_ROW, rowLines)

		border, ok := p.peek(1)
		if !ok {
			break
		}
		if _, isBorder := gridBorderChar(border.Text); !isBorder {
			break
		}
		p.pos++
		p.emitTableSeparatorLine(border.Text, border.Term)
	}

	p.stack.Builder.FinishNode() // GRID_TABLE
	return true
}

// collectGridContentLines consumes and returns every following "|"-prefixed
// line up to (not including) the next border line.
func (p *Parser) collectGridContentLines() []Line {
	var lines []Line
	for {
		next, ok := p.peek(1)
		if !ok || !strings.HasPrefix(strings.TrimLeft(next.Text, " \t"), "|") {
			break
		}
		p.pos++
		lines = append(lines, next)
	}
	return lines
}

// isFullDashLine reports whether line, once trimmed, is nothing but a run
// of at least 3 "-" characters: a multiline-table's optional top/bottom
// border (and, ambiguously, a horizontal rule — spec.md §9 notes this
// recognizer is heuristic and may match more than one cascade item; the
// dispatch order resolves the ambiguity).
func isFullDashLine(line string) bool {
	t := strings.TrimRight(line, " \t")
	if len(t) < 3 {
		return false
	}
	for i := 0; i < len(t); i++ {
		if t[i] != '-' {
			return false
		}
	}
	return true
}

// isMultilineColumnSeparator reports whether line is a multiline/simple
// table's column-width-defining separator: one or more whitespace-separated
// runs of "-", each run a column's width.
func isMultilineColumnSeparator(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		for i := 0; i < len(f); i++ {
			if f[i] != '-' {
				return false
			}
		}
	}
	return true
}

// lineAt returns the line at offset positions past the line currently being
// dispatched (offset 0 is that line itself).
func (p *Parser) lineAt(offset int) (Line, bool) {
	if offset == 0 {
		if p.pos < 0 || p.pos >= len(p.lines) {
			return Line{}, false
		}
		return p.lines[p.pos], true
	}
	return p.peek(offset)
}

// tryMultilineTable implements spec.md §4.3.3's multiline-table recognizer:
// an optional full-width dash border, one or more header lines, a
// column-width-defining dashed separator line, then body lines up to the
// first blank line, closed by an optional full-width dash border (directly
// after the body, or after one blank line). A blank line that is not
// followed by a dash border ends the table, so body rows separated by
// blank lines are not taken into one table.
func (p *Parser) tryMultilineTable(tail, term string) bool {
	topBorder := isFullDashLine(tail)
	headerStart := 0
	if topBorder {
		headerStart = 1
	}

	sepOffset := -1
	for off := headerStart; off <= headerStart+20; off++ {
		line, ok := p.lineAt(off)
		if !ok {
			break
		}
		if strings.TrimSpace(line.Text) == "" {
			break
		}
		if isMultilineColumnSeparator(line.Text) {
			sepOffset = off
			break
		}
	}
	if sepOffset < 0 || sepOffset <= headerStart {
		return false
	}

	p.closeParagraph()
	p.stack.Builder.StartNode(cst.MULTILINE_TABLE)

	if topBorder {
		p.emitTableSeparatorLine(tail, term)
	}

	var headerLines []Line
	for off := headerStart; off < sepOffset; off++ {
		l, _ := p.lineAt(off)
		headerLines = append(headerLines, l)
	}
	p.emitTableLines(cst.TABLE_HEADER, headerLines)

	sepLine, _ := p.lineAt(sepOffset)
	p.emitTableSeparatorLine(sepLine.Text, sepLine.Term)
	p.pos += sepOffset

	for {
		next, ok := p.peek(1)
		if !ok {
			break
		}
		if strings.TrimSpace(next.Text) == "" {
			after, ok2 := p.peek(2)
			if ok2 && isFullDashLine(after.Text) {
				p.pos++
				p.stack.Builder.Token(cst.BLANK_LINE, next.Text+next.Term)
				p.pos++
				p.emitTableSeparatorLine(after.Text, after.Term)
			}
			break
		}
		if isFullDashLine(next.Text) {
			p.pos++
			p.emitTableSeparatorLine(next.Text, next.Term)
			break
		}

		var rowLines []Line
		for {
			n2, ok2 := p.peek(1)
			if !ok2 || strings.TrimSpace(n2.Text) == "" || isFullDashLine(n2.Text) {
				break
			}
			p.pos++
			rowLines = append(rowLines, n2)
		}
		p.emitTableLines(cst.TABLE_ROW, rowLines)
	}

	p.stack.Builder.FinishNode() // MULTILINE_TABLE
	return true
}

// trySimpleTable implements spec.md §4.3.3's simple-table recognizer: one
// header line, a column-width-defining dashed separator line, then
// single-line body rows, ending at the first blank line or a closing
// separator line repeating the same column geometry.
func (p *Parser) trySimpleTable(tail, term string) bool {
	next, ok := p.peek(1)
	if !ok || !isMultilineColumnSeparator(next.Text) {
		return false
	}

	p.closeParagraph()
	p.stack.Builder.StartNode(cst.SIMPLE_TABLE)

	p.emitTableLines(cst.TABLE_HEADER, []Line{{Text: tail, Term: term}})
	p.pos++
	p.emitTableSeparatorLine(next.Text, next.Term)

	for {
		row, ok := p.peek(1)
		if !ok || strings.TrimSpace(row.Text) == "" {
			break
		}
		if isMultilineColumnSeparator(row.Text) {
			p.pos++
			p.emitTableSeparatorLine(row.Text, row.Term)
			break
		}
		p.pos++
		p.emitTableLines(cst.TABLE_ROW, []Line{row})
	}

	p.stack.Builder.FinishNode() // SIMPLE_TABLE
	return true
}
