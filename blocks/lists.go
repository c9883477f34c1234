package blocks

import (
	"github.com/jcorbin/panache/cst"
)

// tryOpenOrContinueList implements spec.md §4.3.1's list-marker handling:
// either opens a new LIST/LIST_ITEM pair, opens a nested LIST under the
// current LIST_ITEM, or starts a sibling LIST_ITEM inside an already-open
// matching LIST.
func (p *Parser) tryOpenOrContinueList(tail, term string) bool {
	m, ok := RecognizeListMarker(tail, p.cfg.Extensions.FancyLists, p.cfg.Extensions.ExampleLists)
	if !ok {
		return false
	}
	p.closeParagraph()

	top := p.stack.Top()
	if top.Kind == ContainerList {
		listMarker := ListMarker{Kind: top.MarkerKind, Delim: top.DelimStyle}
		if listMarker.Matches(m) {
			p.stack.Push(Container{
				Kind: ContainerListItem, Node: cst.LIST_ITEM,
				ContentCol: top.BaseIndentCols + m.Width,
			})
			p.emitListItemMarker(m, tail, term)
			return true
		}
		// Non-matching marker at the same position ends the current list;
		// fall through to open a new sibling list (spec.md §4.3.1).
		p.stack.CloseTo(p.stack.Depth() - 1)
	}

	p.stack.Push(Container{
		Kind: ContainerList, Node: cst.LIST,
		MarkerKind: m.Kind, DelimStyle: m.Delim, BaseIndentCols: 0,
	})
	p.stack.Push(Container{Kind: ContainerListItem, Node: cst.LIST_ITEM, ContentCol: m.Width})
	p.emitListItemMarker(m, tail, term)
	return true
}

func (p *Parser) emitListItemMarker(m ListMarker, tail, term string) {
	p.stack.Builder.Token(cst.LIST_MARKER, m.Text)
	rest := tail[m.Width:]
	if p.cfg.Extensions.TaskLists {
		if box, after, ok := recognizeTaskCheckbox(rest); ok {
			p.stack.Builder.Token(cst.TASK_CHECKBOX, box)
			if gap := rest[len(box) : len(rest)-len(after)]; gap != "" {
				p.stack.Builder.Token(cst.WHITESPACE, gap)
			}
			rest = after
		}
	}
	if rest != "" {
		p.paraLines = append(p.paraLines, Line{Text: rest, Term: term})
	} else if term != "" {
		p.stack.Builder.Token(cst.NEWLINE, term)
	}
}

// recognizeTaskCheckbox matches a leading "[ ] " / "[x] " / "[X] " task-list
// checkbox (spec.md §6's TaskLists extension).
func recognizeTaskCheckbox(s string) (box, rest string, ok bool) {
	if len(s) < 3 || s[0] != '[' || s[2] != ']' {
		return "", s, false
	}
	switch s[1] {
	case ' ', 'x', 'X':
	default:
		return "", s, false
	}
	after := s[3:]
	if len(after) > 0 && after[0] == ' ' {
		after = after[1:]
	}
	return s[:3], after, true
}

// tryDefinitionMarker implements spec.md §4.3's definition-list recognizer:
// a term line followed by one or more ":"/"~" definition marker lines.
func (p *Parser) tryDefinitionMarker(tail, term string) bool {
	marker, rest, ok := DefinitionMarkerLine(tail)
	if !ok {
		return false
	}
	// The buffered paragraph lines, if any, are the term this definition
	// marker attaches to: capture them before closeParagraph would wrap
	// them as a plain PARAGRAPH, so they can be nested as a TERM child of
	// the DEFINITION_ITEM instead of emitted as a preceding sibling.
	termLines := p.paraLines
	p.paraLines = nil

	top := p.stack.Top()
	if top.Kind != ContainerDefinitionList {
		p.stack.Push(Container{Kind: ContainerDefinitionList, Node: cst.DEFINITION_LIST})
	}
	p.stack.Push(Container{Kind: ContainerDefinitionItem, Node: cst.DEFINITION_ITEM, InDefinition: true})
	if len(termLines) > 0 {
		p.stack.Builder.StartNode(cst.TERM)
		for _, ln := range termLines {
			p.stack.Builder.Token(cst.TEXT, ln.Text)
			if ln.Term != "" {
				p.stack.Builder.Token(cst.NEWLINE, ln.Term)
			}
		}
		p.stack.Builder.FinishNode()
	}
	p.stack.Push(Container{Kind: ContainerDefinition, Node: cst.DEFINITION, ContentCol: len(marker)})
	p.stack.Builder.Token(cst.DEFINITION_MARKER, marker)
	if rest != "" {
		p.paraLines = append(p.paraLines, Line{Text: rest, Term: term})
	} else if term != "" {
		p.stack.Builder.Token(cst.NEWLINE, term)
	}
	return true
}

// DefinitionMarkerLine recognizes a ":"/"~" definition-list marker line
// (Pandoc's "Definition lists" extension: a line starting with ":" or "~"
// followed by at least one space).
func DefinitionMarkerLine(line string) (marker, rest string, ok bool) {
	if len(line) == 0 || (line[0] != ':' && line[0] != '~') {
		return "", "", false
	}
	_, tail := IndentWidth(line, 3)
	if len(tail) == 0 || (tail[0] != ':' && tail[0] != '~') {
		return "", "", false
	}
	rest = tail[1:]
	spaces := countLeadingBlank(rest)
	if spaces == 0 && rest != "" {
		return "", "", false
	}
	width := len(line) - len(tail) + 1 + spaces
	return line[:width], line[width:], true
}
