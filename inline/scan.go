package inline

import (
	"strings"

	"github.com/jcorbin/panache/config"
	"github.com/jcorbin/panache/cst"
	"github.com/jcorbin/panache/registry"
)

// atomKind distinguishes the three shapes an atom can take once scan has
// consumed a span of text: already-resolved tree content, a pending
// emphasis/strong delimiter run awaiting Phase 2 resolution, and unclaimed
// plain text destined to become TEXT/NEWLINE tokens.
type atomKind int

const (
	atomPlain atomKind = iota
	atomElement
	atomDelim
)

// atom is one item of scan's flat output sequence (spec.md §4.4's two-phase
// emphasis design: Phase 1 here produces atoms, Phase 2 in emphasis.go
// resolves atomDelim runs against each other).
type atom struct {
	kind atomKind

	text string // atomPlain: literal run of source bytes, newlines included
	elem cst.Element // atomElement: a fully resolved Node or Token

	delimChar    byte // atomDelim: '*', '_', or '~'
	delimCount   int
	delimCanOpen bool
	delimCanClose bool
}

// scanCtx threads the read-only collaborators the cascade consults.
type scanCtx struct {
	reg *registry.Registry
	cfg config.Config
}

// scan implements spec.md §4.4's ordered recognizer cascade over a flattened
// run of text (the concatenation of a node's consecutive direct-child
// TEXT/NEWLINE tokens). It returns the flat atom sequence Phase 2 resolves.
func scan(text string, reg *registry.Registry, cfg config.Config) []atom {
	ctx := scanCtx{reg: reg, cfg: cfg}
	var atoms []atom
	i, start := 0, 0

	flush := func(end int) {
		if end > start {
			atoms = append(atoms, atom{kind: atomPlain, text: text[start:end]})
		}
	}

	for i < len(text) {
		c := text[i]
		var (
			a        atom
			consumed int
			ok       bool
		)
		switch {
		case c == '\\':
			a, consumed, ok = scanBackslash(text, i, ctx)
		case c == '{' && strings.HasPrefix(text[i:], "{{<"):
			a, consumed, ok = scanQuartoShortcode(text, i, ctx)
		case c == '`':
			a, consumed, ok = scanCodeSpan(text, i, ctx)
		case c == '^':
			a, consumed, ok = scanCaret(text, i, ctx)
		case c == '~':
			a, consumed, ok = scanTilde(text, i, ctx)
		case c == '$':
			a, consumed, ok = scanMathDollar(text, i, ctx)
		case c == '<':
			a, consumed, ok = scanAutolink(text, i, ctx)
		case c == '!' && i+1 < len(text) && text[i+1] == '[':
			a, consumed, ok = scanImage(text, i, ctx)
		case c == '[':
			a, consumed, ok = scanBracket(text, i, ctx)
		case c == '@' && cfg.Extensions.Citations:
			a, consumed, ok = scanBareCitation(text, i, ctx)
		case c == '*' || c == '_':
			a, consumed, ok = scanEmphasisDelim(text, i, ctx)
		}
		if ok && consumed > 0 {
			flush(i)
			atoms = append(atoms, a)
			i += consumed
			start = i
			continue
		}
		i++
	}
	flush(len(text))
	return atoms
}

func rawToken(kind cst.Kind, text string) atom {
	return atom{kind: atomElement, elem: cst.NewToken(kind, text)}
}

func rawNode(n *cst.Node) atom {
	return atom{kind: atomElement, elem: n}
}

// scanBackslash handles spec.md §4.4's backslash-led items: the two
// backslash-math variants, character escapes, the nonbreaking-space escape,
// the backslash hard line break, and LaTeX commands.
func scanBackslash(text string, i int, ctx scanCtx) (atom, int, bool) {
	rest := text[i:]

	if ctx.cfg.Extensions.TexMathDoubleBackslash {
		if strings.HasPrefix(rest, `\\[`) {
			if a, n, ok := scanDelimitedMath(text, i, `\\[`, `\\]`, cst.DISPLAY_MATH); ok {
				return a, n, true
			}
		}
		if strings.HasPrefix(rest, `\\(`) {
			if a, n, ok := scanDelimitedMath(text, i, `\\(`, `\\)`, cst.INLINE_MATH); ok {
				return a, n, true
			}
		}
	}
	if ctx.cfg.Extensions.TexMathSingleBackslash {
		if strings.HasPrefix(rest, `\[`) {
			if a, n, ok := scanDelimitedMath(text, i, `\[`, `\]`, cst.DISPLAY_MATH); ok {
				return a, n, true
			}
		}
		if strings.HasPrefix(rest, `\(`) {
			if a, n, ok := scanDelimitedMath(text, i, `\(`, `\)`, cst.INLINE_MATH); ok {
				return a, n, true
			}
		}
	}

	if len(rest) < 2 {
		return atom{}, 0, false
	}
	next := rest[1]

	// Hard line break: backslash immediately followed by a newline.
	if strings.HasPrefix(rest, "\\\r\n") {
		return rawToken(cst.HARD_LINE_BREAK, "\\\r\n"), 3, true
	}
	if next == '\n' {
		return rawToken(cst.HARD_LINE_BREAK, "\\\n"), 2, true
	}

	if next == ' ' {
		return rawToken(cst.NONBREAKING_SPACE, `\ `), 2, true
	}

	if isASCIIPunct(next) {
		return rawToken(cst.ESCAPED_CHAR, rest[:2]), 2, true
	}

	if ctx.cfg.Extensions.RawTex && isLetter(next) {
		j := i + 1
		for j < len(text) && (isLetter(text[j]) || text[j] == '*') {
			j++
		}
		return rawToken(cst.LATEX_COMMAND, text[i:j]), j - i, true
	}

	return atom{}, 0, false
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// scanDelimitedMath consumes open ... close as an INLINE_MATH/DISPLAY_MATH
// node, provided a matching close is found before the run ends. It does not
// allow the content to be empty.
func scanDelimitedMath(text string, i int, open, close string, kind cst.Kind) (atom, int, bool) {
	contentStart := i + len(open)
	end := strings.Index(text[contentStart:], close)
	if end <= 0 {
		return atom{}, 0, false
	}
	content := text[contentStart : contentStart+end]
	markerKind := cst.INLINE_MATH_MARKER
	if kind == cst.DISPLAY_MATH {
		markerKind = cst.DISPLAY_MATH_MARKER
	}
	n := cst.NewNode(kind,
		cst.NewToken(markerKind, open),
		cst.NewToken(cst.TEXT, content),
		cst.NewToken(markerKind, close),
	)
	total := contentStart + end + len(close) - i
	return rawNode(n), total, true
}

// scanMathDollar handles `$...$` inline math and `$$...$$` display math.
func scanMathDollar(text string, i int, ctx scanCtx) (atom, int, bool) {
	if strings.HasPrefix(text[i:], "$$") {
		if a, n, ok := scanDollarSpan(text, i, "$$", cst.DISPLAY_MATH); ok {
			return a, n, true
		}
		return atom{}, 0, false
	}
	if a, n, ok := scanDollarSpan(text, i, "$", cst.INLINE_MATH); ok {
		return a, n, true
	}
	return atom{}, 0, false
}

// scanDollarSpan implements CommonMark/Pandoc's dollar-math rule: the
// character right after the opener must not be whitespace, the character
// right before the closer must not be whitespace, and the span may not
// contain a blank line.
func scanDollarSpan(text string, i int, delim string, kind cst.Kind) (atom, int, bool) {
	contentStart := i + len(delim)
	if contentStart >= len(text) || isSpace(text[contentStart]) {
		return atom{}, 0, false
	}
	j := contentStart
	for {
		idx := strings.Index(text[j:], delim)
		if idx < 0 {
			return atom{}, 0, false
		}
		closeAt := j + idx
		if closeAt == contentStart {
			j = closeAt + len(delim)
			continue
		}
		if isSpace(text[closeAt-1]) {
			j = closeAt + len(delim)
			continue
		}
		if strings.Contains(text[contentStart:closeAt], "\n\n") {
			return atom{}, 0, false
		}
		content := text[contentStart:closeAt]
		n := cst.NewNode(kind,
			cst.NewToken(cst.DISPLAY_MATH_MARKER, delim),
			cst.NewToken(cst.TEXT, content),
			cst.NewToken(cst.DISPLAY_MATH_MARKER, delim),
		)
		return rawNode(n), closeAt + len(delim) - i, true
	}
}

// scanQuartoShortcode recognizes `{{< ... >}}` (gated on QuartoShortcodes).
func scanQuartoShortcode(text string, i int, ctx scanCtx) (atom, int, bool) {
	if !ctx.cfg.Extensions.QuartoShortcodes {
		return atom{}, 0, false
	}
	end := strings.Index(text[i:], ">}}")
	if end < 0 {
		return atom{}, 0, false
	}
	full := text[i : i+end+3]
	n := cst.NewNode(cst.SHORTCODE, cst.NewToken(cst.TEXT, full))
	return rawNode(n), len(full), true
}

// scanCodeSpan recognizes a run of one or more backticks, its matching
// closing run of the same length, and an optional trailing `{...}`
// attribute block, reclassified to RAW_INLINE when it reads `{=format}`
// (spec.md §4.4's code-span/raw-inline cascade item).
func scanCodeSpan(text string, i int, ctx scanCtx) (atom, int, bool) {
	j := i
	for j < len(text) && text[j] == '`' {
		j++
	}
	openLen := j - i
	search := j
	for {
		idx := strings.IndexByte(text[search:], '`')
		if idx < 0 {
			return atom{}, 0, false
		}
		closeStart := search + idx
		k := closeStart
		for k < len(text) && text[k] == '`' {
			k++
		}
		closeLen := k - closeStart
		if closeLen == openLen {
			end := k

			if ctx.cfg.Extensions.RawAttribute && end < len(text) && text[end] == '{' {
				if attrEnd := strings.IndexByte(text[end:], '}'); attrEnd >= 0 {
					attr := text[end+1 : end+attrEnd]
					attrFull := text[end : end+attrEnd+1]
					end += attrEnd + 1
					if strings.HasPrefix(attr, "=") {
						n := cst.NewNode(cst.RAW_INLINE,
							cst.NewToken(cst.TEXT, text[i:closeStart+closeLen]),
							cst.NewToken(cst.ATTRIBUTE, attrFull),
						)
						return rawNode(n), end - i, true
					}
					n := cst.NewNode(cst.CODE_SPAN,
						cst.NewToken(cst.TEXT, text[i:closeStart+closeLen]),
						cst.NewToken(cst.ATTRIBUTE, attrFull),
					)
					return rawNode(n), end - i, true
				}
			}

			n := cst.NewNode(cst.CODE_SPAN, cst.NewToken(cst.TEXT, text[i:end]))
			return rawNode(n), end - i, true
		}
		search = k
	}
}

// scanCaret handles `^[...]` inline footnotes (gated Footnotes) and
// `^text^` superscript spans.
func scanCaret(text string, i int, ctx scanCtx) (atom, int, bool) {
	if ctx.cfg.Extensions.Footnotes && i+1 < len(text) && text[i+1] == '[' {
		if a, n, ok := scanBalancedBrackets(text, i+1, cst.INLINE_FOOTNOTE, cst.FOOTNOTE_REFERENCE); ok {
			return a, n + 1, true
		}
	}
	return scanSimpleSpan(text, i, '^', cst.SUPERSCRIPT, cst.SUPERSCRIPT_MARKER)
}

// scanTilde handles `~~text~~` strikeout and `~text~` subscript, preferring
// the longer (strikeout) match.
func scanTilde(text string, i int, ctx scanCtx) (atom, int, bool) {
	if strings.HasPrefix(text[i:], "~~") {
		if a, n, ok := scanSpanDelim(text, i, "~~", cst.STRIKEOUT, cst.STRIKEOUT_MARKER); ok {
			return a, n, true
		}
	}
	return scanSimpleSpan(text, i, '~', cst.SUBSCRIPT, cst.SUBSCRIPT_MARKER)
}

// scanSimpleSpan matches a single delimiter byte b and the next b on the
// same line, rejecting the span when the byte right after the opener or
// right before the closer is whitespace; spaces elsewhere inside the span
// are not checked.
func scanSimpleSpan(text string, i int, b byte, kind cst.Kind, markerKind cst.Kind) (atom, int, bool) {
	if i+1 >= len(text) || text[i+1] == b || isSpace(text[i+1]) {
		return atom{}, 0, false
	}
	j := i + 1
	for j < len(text) {
		if text[j] == '\n' {
			return atom{}, 0, false
		}
		if text[j] == b {
			break
		}
		j++
	}
	if j >= len(text) || isSpace(text[j-1]) {
		return atom{}, 0, false
	}
	content := text[i+1 : j]
	n := cst.NewNode(kind,
		cst.NewToken(markerKind, text[i:i+1]),
		cst.NewToken(cst.TEXT, content),
		cst.NewToken(markerKind, text[j:j+1]),
	)
	return rawNode(n), j + 1 - i, true
}

func scanSpanDelim(text string, i int, delim string, kind, markerKind cst.Kind) (atom, int, bool) {
	contentStart := i + len(delim)
	if contentStart >= len(text) || isSpace(text[contentStart]) {
		return atom{}, 0, false
	}
	end := strings.Index(text[contentStart:], delim)
	if end <= 0 {
		return atom{}, 0, false
	}
	closeAt := contentStart + end
	if isSpace(text[closeAt-1]) {
		return atom{}, 0, false
	}
	content := text[contentStart:closeAt]
	n := cst.NewNode(kind,
		cst.NewToken(markerKind, delim),
		cst.NewToken(cst.TEXT, content),
		cst.NewToken(markerKind, delim),
	)
	return rawNode(n), closeAt + len(delim) - i, true
}

// scanAutolink recognizes `<scheme:...>` and `<user@host>` (spec.md §4.4's
// autolink item).
func scanAutolink(text string, i int, ctx scanCtx) (atom, int, bool) {
	end := strings.IndexByte(text[i:], '>')
	if end < 0 {
		return atom{}, 0, false
	}
	inner := text[i+1 : i+end]
	if inner == "" || strings.ContainsAny(inner, " \t\n<") {
		return atom{}, 0, false
	}
	looksURI := strings.Contains(inner, ":") && isValidScheme(inner[:strings.IndexByte(inner, ':')])
	looksEmail := strings.Contains(inner, "@") && !strings.Contains(inner, ":")
	if !looksURI && !looksEmail {
		return atom{}, 0, false
	}
	n := cst.NewNode(cst.AUTOLINK, cst.NewToken(cst.TEXT, text[i:i+end+1]))
	return rawNode(n), end + 1, true
}

func isValidScheme(s string) bool {
	if len(s) < 2 || len(s) > 32 || !isLetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isLetter(c) && !(c >= '0' && c <= '9') && c != '+' && c != '.' && c != '-' {
			return false
		}
	}
	return true
}

// scanImage handles `![alt](url "title")` and `![alt][ref]`.
func scanImage(text string, i int, ctx scanCtx) (atom, int, bool) {
	label, afterLabel, ok := scanBracketLabel(text[i+1:])
	if !ok {
		return atom{}, 0, false
	}
	afterLabel += i + 1

	if a, n, ok := scanInlineTail(text, afterLabel, label, cst.IMAGE_LINK, cst.IMAGE_LINK_START, "!["); ok {
		return a, n + (afterLabel - i), true
	}
	if a, n, ok := scanReferenceTail(text, afterLabel, label, cst.IMAGE_LINK, cst.IMAGE_LINK_START, "![", ctx); ok {
		return a, n + (afterLabel - i), true
	}
	return atom{}, 0, false
}

// scanBracket handles every construct that opens with a bare `[`: footnote
// references, inline/reference links, shortcut reference links, bracketed
// citations, and (when trailed by `{...}`) bracketed/native spans.
func scanBracket(text string, i int, ctx scanCtx) (atom, int, bool) {
	if ctx.cfg.Extensions.Footnotes && i+1 < len(text) && text[i+1] == '^' {
		if label, after, ok := scanBracketLabel(text[i:]); ok {
			id := label[2 : len(label)-1]
			if ctx.reg.HasFootnote(id) {
				n := cst.NewNode(cst.FOOTNOTE_REFERENCE_NODE, cst.NewToken(cst.FOOTNOTE_REFERENCE, label))
				return rawNode(n), after, true
			}
		}
	}

	if ctx.cfg.Extensions.Citations && i+1 < len(text) && (text[i+1] == '@' || text[i+1] == '-') {
		if a, n, ok := scanBracketedCitation(text, i, ctx); ok {
			return a, n, true
		}
	}

	label, afterLabel, ok := scanBracketLabel(text[i:])
	if !ok {
		return atom{}, 0, false
	}
	afterLabel += i

	if a, n, ok := scanInlineTail(text, afterLabel, label, cst.LINK, cst.LINK_START, "["); ok {
		return a, n + (afterLabel - i), true
	}
	if a, n, ok := scanReferenceTail(text, afterLabel, label, cst.LINK, cst.LINK_START, "[", ctx); ok {
		return a, n + (afterLabel - i), true
	}
	if ctx.cfg.Extensions.NativeSpans && afterLabel < len(text) && text[afterLabel] == '{' {
		if attrEnd := strings.IndexByte(text[afterLabel:], '}'); attrEnd >= 0 {
			attr := text[afterLabel : afterLabel+attrEnd+1]
			n := cst.NewNode(cst.BRACKETED_SPAN,
				cst.NewToken(cst.TEXT, label),
				cst.NewToken(cst.ATTRIBUTE, attr),
			)
			return rawNode(n), afterLabel + attrEnd + 1 - i, true
		}
	}
	// Shortcut reference: "[label]" alone, label used as its own key.
	if def, ok := ctx.reg.Lookup(label[1 : len(label)-1]); ok {
		_ = def
		n := cst.NewNode(cst.LINK,
			cst.NewToken(cst.LINK_START, "["),
			cst.NewToken(cst.TEXT, label[1:len(label)-1]),
			cst.NewToken(cst.TEXT, "]"),
		)
		return rawNode(n), afterLabel - i, true
	}
	return atom{}, 0, false
}

// scanBracketedCitation handles `[@key]`, `[-@key]`, and `[@key; @key2]`
// bracketed citation syntax.
func scanBracketedCitation(text string, i int, ctx scanCtx) (atom, int, bool) {
	end := strings.IndexByte(text[i:], ']')
	if end < 0 {
		return atom{}, 0, false
	}
	inner := text[i+1 : i+end]
	if !strings.Contains(inner, "@") {
		return atom{}, 0, false
	}
	n := cst.NewNode(cst.CITATION, cst.NewToken(cst.TEXT, text[i:i+end+1]))
	return rawNode(n), end + 1, true
}

// scanBareCitation handles a bare `@key` citation outside brackets.
func scanBareCitation(text string, i int, ctx scanCtx) (atom, int, bool) {
	before := byteBefore(text, i)
	if before != 0 && !isSpace(before) && !isASCIIPunct(before) {
		return atom{}, 0, false
	}
	j := i + 1
	for j < len(text) && (isAlnum(text[j]) || strings.IndexByte("_:.#$%&-+?<>~/", text[j]) >= 0) {
		j++
	}
	if j == i+1 {
		return atom{}, 0, false
	}
	n := cst.NewNode(cst.CITATION, cst.NewToken(cst.TEXT, text[i:j]))
	return rawNode(n), j - i, true
}

// scanBracketLabel scans a balanced `[...]` starting at s[0]=='[', returning
// the full bracketed text (including brackets) and how many bytes it spans.
func scanBracketLabel(s string) (label string, n int, ok bool) {
	if len(s) == 0 || s[0] != '[' {
		return "", 0, false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[:i+1], i + 1, true
			}
		case '\n':
			return "", 0, false
		}
	}
	return "", 0, false
}

// scanBalancedBrackets scans text[i]=='[' ... matching ']' and wraps the
// inner text as one TEXT token inside a node of kind, between "^[" and "]"
// tokens of markerKind — used for inline footnotes, where content is treated as flattened
// raw text rather than recursively inline-parsed (a documented scope
// simplification).
func scanBalancedBrackets(text string, i int, kind cst.Kind, markerKind cst.Kind) (atom, int, bool) {
	label, n, ok := scanBracketLabel(text[i:])
	if !ok {
		return atom{}, 0, false
	}
	inner := label[1 : len(label)-1]
	node := cst.NewNode(kind,
		cst.NewToken(markerKind, "^["),
		cst.NewToken(cst.TEXT, inner),
		cst.NewToken(markerKind, "]"),
	)
	return rawNode(node), n, true
}

// scanInlineTail matches "(url \"title\")" immediately following a bracket
// label, building a LINK/IMAGE_LINK node. The visible label text and the
// "(...)" tail are both flattened to raw TEXT (a documented simplification:
// nested emphasis inside link text is not resolved).
func scanInlineTail(text string, pos int, label string, kind cst.Kind, startKind cst.Kind, prefix string) (atom, int, bool) {
	if pos >= len(text) || text[pos] != '(' {
		return atom{}, 0, false
	}
	depth := 0
	for j := pos; j < len(text); j++ {
		switch text[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				tail := text[pos : j+1]
				n := cst.NewNode(kind,
					cst.NewToken(startKind, prefix),
					cst.NewToken(cst.TEXT, label[1:len(label)-1]),
					cst.NewToken(cst.TEXT, "]"+tail),
				)
				return rawNode(n), j + 1 - pos, true
			}
		case '\n':
			return atom{}, 0, false
		}
	}
	return atom{}, 0, false
}

// scanReferenceTail matches "[ref]" following a bracket label, resolving
// ref against the registry.
func scanReferenceTail(text string, pos int, label string, kind cst.Kind, startKind cst.Kind, prefix string, ctx scanCtx) (atom, int, bool) {
	if pos >= len(text) || text[pos] != '[' {
		return atom{}, 0, false
	}
	refLabel, n, ok := scanBracketLabel(text[pos:])
	if !ok {
		return atom{}, 0, false
	}
	key := refLabel[1 : len(refLabel)-1]
	if key == "" {
		key = label[1 : len(label)-1]
	}
	if _, ok := ctx.reg.Lookup(key); !ok {
		return atom{}, 0, false
	}
	node := cst.NewNode(kind,
		cst.NewToken(startKind, prefix),
		cst.NewToken(cst.TEXT, label[1:len(label)-1]),
		cst.NewToken(cst.TEXT, "]"+refLabel),
	)
	return rawNode(node), n, true
}

// scanEmphasisDelim collects a maximal run of '*' or '_' and classifies it
// per spec.md §4.4's emphasis-resolution flanking rules, deferring the
// actual EMPHASIS/STRONG decision to Phase 2 (emphasis.go).
func scanEmphasisDelim(text string, i int, ctx scanCtx) (atom, int, bool) {
	c := text[i]
	j := i
	for j < len(text) && text[j] == c {
		j++
	}
	canOpen, canClose := flanking(text, i, j)
	if c == '_' && ctx.cfg.Extensions.IntrawordUnderscores {
		before, after := byteBefore(text, i), byteAfter(text, j)
		beforeIsPunct := before != 0 && isASCIIPunct(before)
		afterIsPunct := after != 0 && isASCIIPunct(after)
		leftFlanking, rightFlanking := canOpen, canClose
		canOpen = leftFlanking && (!rightFlanking || beforeIsPunct)
		canClose = rightFlanking && (!leftFlanking || afterIsPunct)
	}
	return atom{
		kind:          atomDelim,
		text:          text[i:j],
		delimChar:     c,
		delimCount:    j - i,
		delimCanOpen:  canOpen,
		delimCanClose: canClose,
	}, j - i, true
}
