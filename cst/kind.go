// Package cst implements the lossless concrete syntax tree shared by the
// block parser, inline parser, and formatter: an immutable green tree of
// typed nodes and tokens, plus a red-tree wrapper for parent-aware
// navigation.
package cst

// Kind is the closed enumeration partitioning token kinds from node kinds.
// Values below kindNodeBase are tokens; values at or above it are nodes.
type Kind uint16

// String reports the name of k, matching the style of the teacher's
// BlockType.Format: a readable label, never the raw integer, with an
// "InvalidKind" fallback for out-of-range values.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "InvalidKind"
}

// IsToken reports whether k identifies a leaf token kind.
func (k Kind) IsToken() bool { return k < kindNodeBase }

// IsNode reports whether k identifies an interior node kind.
func (k Kind) IsNode() bool { return k >= kindNodeBase && k < kindMax }

const (
	// Token kinds.
	Invalid Kind = iota
	TEXT
	NEWLINE
	WHITESPACE
	BLANK_LINE
	ATX_HEADING_MARKER
	SETEXT_HEADING_UNDERLINE
	LIST_MARKER
	TASK_CHECKBOX
	BLOCKQUOTE_MARKER
	CODE_FENCE_MARKER
	CODE_LANGUAGE
	CODE_INFO
	EMPHASIS_MARKER
	STRONG_MARKER
	STRIKEOUT_MARKER
	SUPERSCRIPT_MARKER
	SUBSCRIPT_MARKER
	INLINE_MATH_MARKER
	DISPLAY_MATH_MARKER
	LINK_START
	IMAGE_LINK_START
	ESCAPED_CHAR
	HARD_LINE_BREAK
	NONBREAKING_SPACE
	LATEX_COMMAND
	DEFINITION_MARKER
	FOOTNOTE_REFERENCE
	HORIZONTAL_RULE
	TABLE_CAPTION_PREFIX
	DIV_FENCE_MARKER
	LINE_BLOCK_MARKER
	HTML_TEXT
	RAW_TEXT

	kindNodeBase = 1 << 10

	// Node kinds.
	DOCUMENT Kind = kindNodeBase + iota
	PARAGRAPH
	HEADING
	HEADING_CONTENT
	BLOCKQUOTE
	LIST
	LIST_ITEM
	CODE_BLOCK
	CODE_FENCE_OPEN
	CODE_FENCE_CLOSE
	CODE_CONTENT
	MATH_BLOCK
	MATH_CONTENT
	INLINE_MATH
	DISPLAY_MATH
	FENCED_DIV
	DIV_FENCE_OPEN
	DIV_FENCE_CLOSE
	DIV_INFO
	DEFINITION_LIST
	DEFINITION_ITEM
	TERM
	DEFINITION
	LINE_BLOCK
	LINE_BLOCK_LINE
	PIPE_TABLE
	SIMPLE_TABLE
	GRID_TABLE
	MULTILINE_TABLE
	TABLE_HEADER
	TABLE_ROW
	TABLE_SEPARATOR
	TABLE_CAPTION
	REFERENCE_DEFINITION
	FOOTNOTE_DEFINITION
	HTML_BLOCK
	LATEX_ENVIRONMENT
	EMPHASIS
	STRONG
	STRIKEOUT
	SUPERSCRIPT
	SUBSCRIPT
	CODE_SPAN
	RAW_INLINE
	LINK
	IMAGE_LINK
	AUTOLINK
	CITATION
	FOOTNOTE_REFERENCE_NODE
	INLINE_FOOTNOTE
	BRACKETED_SPAN
	ATTRIBUTE
	SHORTCODE
	YAML_METADATA
	PANDOC_TITLE_BLOCK

	kindMax
)

var kindNames = map[Kind]string{
	TEXT:                     "TEXT",
	NEWLINE:                  "NEWLINE",
	WHITESPACE:               "WHITESPACE",
	BLANK_LINE:               "BLANK_LINE",
	ATX_HEADING_MARKER:       "ATX_HEADING_MARKER",
	SETEXT_HEADING_UNDERLINE: "SETEXT_HEADING_UNDERLINE",
	LIST_MARKER:              "LIST_MARKER",
	TASK_CHECKBOX:            "TASK_CHECKBOX",
	BLOCKQUOTE_MARKER:        "BLOCKQUOTE_MARKER",
	CODE_FENCE_MARKER:        "CODE_FENCE_MARKER",
	CODE_LANGUAGE:            "CODE_LANGUAGE",
	CODE_INFO:                "CODE_INFO",
	EMPHASIS_MARKER:          "EMPHASIS_MARKER",
	STRONG_MARKER:            "STRONG_MARKER",
	STRIKEOUT_MARKER:         "STRIKEOUT_MARKER",
	SUPERSCRIPT_MARKER:       "SUPERSCRIPT_MARKER",
	SUBSCRIPT_MARKER:         "SUBSCRIPT_MARKER",
	INLINE_MATH_MARKER:       "INLINE_MATH_MARKER",
	DISPLAY_MATH_MARKER:      "DISPLAY_MATH_MARKER",
	LINK_START:               "LINK_START",
	IMAGE_LINK_START:         "IMAGE_LINK_START",
	ESCAPED_CHAR:             "ESCAPED_CHAR",
	HARD_LINE_BREAK:          "HARD_LINE_BREAK",
	NONBREAKING_SPACE:        "NONBREAKING_SPACE",
	LATEX_COMMAND:            "LATEX_COMMAND",
	DEFINITION_MARKER:        "DEFINITION_MARKER",
	FOOTNOTE_REFERENCE:       "FOOTNOTE_REFERENCE",
	HORIZONTAL_RULE:          "HORIZONTAL_RULE",
	TABLE_CAPTION_PREFIX:     "TABLE_CAPTION_PREFIX",
	DIV_FENCE_MARKER:         "DIV_FENCE_MARKER",
	LINE_BLOCK_MARKER:        "LINE_BLOCK_MARKER",
	HTML_TEXT:                "HTML_TEXT",
	RAW_TEXT:                 "RAW_TEXT",

	DOCUMENT:                "DOCUMENT",
	PARAGRAPH:               "PARAGRAPH",
	HEADING:                 "HEADING",
	HEADING_CONTENT:         "HEADING_CONTENT",
	BLOCKQUOTE:              "BLOCKQUOTE",
	LIST:                    "LIST",
	LIST_ITEM:               "LIST_ITEM",
	CODE_BLOCK:              "CODE_BLOCK",
	CODE_FENCE_OPEN:         "CODE_FENCE_OPEN",
	CODE_FENCE_CLOSE:        "CODE_FENCE_CLOSE",
	CODE_CONTENT:            "CODE_CONTENT",
	MATH_BLOCK:              "MATH_BLOCK",
	MATH_CONTENT:            "MATH_CONTENT",
	INLINE_MATH:             "INLINE_MATH",
	DISPLAY_MATH:            "DISPLAY_MATH",
	FENCED_DIV:              "FENCED_DIV",
	DIV_FENCE_OPEN:          "DIV_FENCE_OPEN",
	DIV_FENCE_CLOSE:         "DIV_FENCE_CLOSE",
	DIV_INFO:                "DIV_INFO",
	DEFINITION_LIST:         "DEFINITION_LIST",
	DEFINITION_ITEM:         "DEFINITION_ITEM",
	TERM:                    "TERM",
	DEFINITION:              "DEFINITION",
	LINE_BLOCK:              "LINE_BLOCK",
	LINE_BLOCK_LINE:         "LINE_BLOCK_LINE",
	PIPE_TABLE:              "PIPE_TABLE",
	SIMPLE_TABLE:            "SIMPLE_TABLE",
	GRID_TABLE:              "GRID_TABLE",
	MULTILINE_TABLE:         "MULTILINE_TABLE",
	TABLE_HEADER:            "TABLE_HEADER",
	TABLE_ROW:               "TABLE_ROW",
	TABLE_SEPARATOR:         "TABLE_SEPARATOR",
	TABLE_CAPTION:           "TABLE_CAPTION",
	REFERENCE_DEFINITION:    "REFERENCE_DEFINITION",
	FOOTNOTE_DEFINITION:     "FOOTNOTE_DEFINITION",
	HTML_BLOCK:              "HTML_BLOCK",
	LATEX_ENVIRONMENT:       "LATEX_ENVIRONMENT",
	EMPHASIS:                "EMPHASIS",
	STRONG:                  "STRONG",
	STRIKEOUT:               "STRIKEOUT",
	SUPERSCRIPT:             "SUPERSCRIPT",
	SUBSCRIPT:               "SUBSCRIPT",
	CODE_SPAN:               "CODE_SPAN",
	RAW_INLINE:              "RAW_INLINE",
	LINK:                    "LINK",
	IMAGE_LINK:              "IMAGE_LINK",
	AUTOLINK:                "AUTOLINK",
	CITATION:                "CITATION",
	FOOTNOTE_REFERENCE_NODE: "FOOTNOTE_REFERENCE_NODE",
	INLINE_FOOTNOTE:         "INLINE_FOOTNOTE",
	BRACKETED_SPAN:          "BRACKETED_SPAN",
	ATTRIBUTE:               "ATTRIBUTE",
	SHORTCODE:               "SHORTCODE",
	YAML_METADATA:           "YAML_METADATA",
	PANDOC_TITLE_BLOCK:      "PANDOC_TITLE_BLOCK",
}
