// Package config defines the subset of configuration that constrains
// parsing and formatting (spec.md §6). Discovering and merging config files
// is the excluded external collaborator (spec.md §1); this package only
// defines the struct shape and a minimal decode helper an external loader
// can call.
package config

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// Flavor seeds extension defaults, matching spec.md §6's `flavor` option.
type Flavor string

// Supported flavors.
const (
	FlavorPandoc     Flavor = "pandoc"
	FlavorQuarto     Flavor = "quarto"
	FlavorRMarkdown  Flavor = "rmarkdown"
	FlavorGFM        Flavor = "gfm"
	FlavorCommonMark Flavor = "commonmark"
)

// Wrap selects the formatter's paragraph line-break strategy.
type Wrap string

// Supported Wrap values.
const (
	WrapPreserve Wrap = "preserve"
	WrapReflow   Wrap = "reflow"
)

// BlankLines selects how the formatter treats runs of consecutive blank
// lines between blocks.
type BlankLines string

// Supported BlankLines values.
const (
	BlankLinesPreserve BlankLines = "preserve"
	BlankLinesCollapse BlankLines = "collapse"
)

// LineEnding selects the formatter's output line-ending style.
type LineEnding string

// Supported LineEnding values.
const (
	LineEndingAuto LineEnding = "auto"
	LineEndingLF   LineEnding = "lf"
	LineEndingCRLF LineEnding = "crlf"
)

// MathDelimiterStyle selects how the formatter normalizes math delimiters.
type MathDelimiterStyle string

// Supported MathDelimiterStyle values.
const (
	MathDelimiterPreserve  MathDelimiterStyle = "preserve"
	MathDelimiterDollars   MathDelimiterStyle = "dollars"
	MathDelimiterBackslash MathDelimiterStyle = "backslash"
)

// FenceStyle selects the formatter's code-fence character normalization.
type FenceStyle string

// Supported FenceStyle values.
const (
	FenceStyleBacktick FenceStyle = "backtick"
	FenceStyleTilde    FenceStyle = "tilde"
	FenceStylePreserve FenceStyle = "preserve"
)

// AttributeStyle selects how code-block info strings are normalized.
type AttributeStyle string

// Supported AttributeStyle values.
const (
	AttributeStylePandoc AttributeStyle = "pandoc" // {.python .numberLines}
	AttributeStyleBare   AttributeStyle = "bare"   // python
)

// Extensions mirrors spec.md §6's `extensions.*` table. Named bool fields,
// not a bitmask: SPEC_FULL.md's AMBIENT/DOMAIN SECTIONS note explains why
// this diverges from the teacher's EXTENSION_* iota bitmask (other_examples
// blackfriday) — the extension surface here is wide enough that named
// fields read far better at every call site than shifted bit tests.
type Extensions struct {
	FancyLists              bool `toml:"fancy_lists"`
	ExampleLists             bool `toml:"example_lists"`
	TaskLists               bool `toml:"task_lists"`
	FencedDivs              bool `toml:"fenced_divs"`
	TexMathSingleBackslash  bool `toml:"tex_math_single_backslash"`
	TexMathDoubleBackslash  bool `toml:"tex_math_double_backslash"`
	Footnotes               bool `toml:"footnotes"`
	Citations               bool `toml:"citations"`
	RawHTML                 bool `toml:"raw_html"`
	RawTex                  bool `toml:"raw_tex"`
	RawAttribute            bool `toml:"raw_attribute"`
	IntrawordUnderscores    bool `toml:"intraword_underscores"`
	EscapedLineBreaks       bool `toml:"escaped_line_breaks"`
	AllSymbolsEscapable     bool `toml:"all_symbols_escapable"`
	LineBlocks              bool `toml:"line_blocks"`
	NativeSpans             bool `toml:"native_spans"`
	QuartoShortcodes        bool `toml:"quarto_shortcodes"`
	QuartoCrossrefs         bool `toml:"quarto_crossrefs"`
	QuartoCallouts          bool `toml:"quarto_callouts"`
}

// CodeBlocks mirrors spec.md §6's `code_blocks.*` table.
type CodeBlocks struct {
	FenceStyle      FenceStyle     `toml:"fence_style"`
	AttributeStyle  AttributeStyle `toml:"attribute_style"`
	MinFenceLength  int            `toml:"min_fence_length"`
}

// Config is the subset of configuration that constrains the parser and
// formatter (spec.md §6). A full config file additionally carries linter
// rule toggles and CLI defaults; those belong to the excluded external
// collaborators and are not modeled here.
type Config struct {
	Flavor             Flavor             `toml:"flavor"`
	LineWidth          int                `toml:"line_width"`
	Wrap               Wrap               `toml:"wrap"`
	BlankLines         BlankLines         `toml:"blank_lines"`
	LineEnding         LineEnding         `toml:"line_ending"`
	MathIndent         int                `toml:"math_indent"`
	MathDelimiterStyle MathDelimiterStyle `toml:"math_delimiter_style"`
	Extensions         Extensions         `toml:"extensions"`
	CodeBlocks         CodeBlocks         `toml:"code_blocks"`
}

// Default returns the built-in defaults for flavor, seeding the extension
// set the way spec.md §6 describes ("flavor... seeds extension defaults").
func Default(flavor Flavor) Config {
	cfg := Config{
		Flavor:             flavor,
		LineWidth:          80,
		Wrap:               WrapReflow,
		BlankLines:         BlankLinesCollapse,
		LineEnding:         LineEndingAuto,
		MathIndent:         2,
		MathDelimiterStyle: MathDelimiterDollars,
		CodeBlocks: CodeBlocks{
			FenceStyle:     FenceStyleBacktick,
			AttributeStyle: AttributeStylePandoc,
			MinFenceLength: 3,
		},
	}

	switch flavor {
	case FlavorGFM, FlavorCommonMark:
		cfg.Extensions = Extensions{
			RawHTML:             true,
			AllSymbolsEscapable: true,
		}
	case FlavorQuarto:
		cfg.Extensions = Extensions{
			FancyLists:             true,
			ExampleLists:           true,
			TaskLists:              true,
			FencedDivs:             true,
			TexMathSingleBackslash: true,
			Footnotes:              true,
			Citations:              true,
			RawHTML:                true,
			RawTex:                 true,
			RawAttribute:           true,
			IntrawordUnderscores:   true,
			EscapedLineBreaks:      true,
			AllSymbolsEscapable:    true,
			LineBlocks:             true,
			NativeSpans:            true,
			QuartoShortcodes:       true,
			QuartoCrossrefs:        true,
			QuartoCallouts:         true,
		}
	case FlavorRMarkdown:
		cfg.Extensions = Extensions{
			FancyLists:             true,
			TaskLists:              true,
			FencedDivs:             true,
			TexMathSingleBackslash: true,
			Footnotes:              true,
			Citations:              true,
			RawHTML:                true,
			RawTex:                 true,
			IntrawordUnderscores:   true,
			EscapedLineBreaks:      true,
			AllSymbolsEscapable:    true,
		}
	default: // FlavorPandoc and unknown flavors
		cfg.Extensions = Extensions{
			FancyLists:             true,
			ExampleLists:           true,
			TaskLists:              true,
			FencedDivs:             true,
			TexMathSingleBackslash: true,
			Footnotes:              true,
			Citations:              true,
			RawHTML:                true,
			RawTex:                 true,
			RawAttribute:           true,
			IntrawordUnderscores:   true,
			EscapedLineBreaks:      true,
			AllSymbolsEscapable:    true,
			LineBlocks:             true,
			NativeSpans:            true,
		}
	}

	return cfg
}

// DecodeConfig decodes a TOML document into a Config seeded from
// Default(FlavorPandoc), so a caller's partial file only needs to specify
// the fields it overrides. Discovering *which* file to read, merging
// multiple layers, and validating unknown keys belongs to the excluded
// external collaborator (spec.md §1); this is just the struct-shape seam it
// would call.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := Default(FlavorPandoc)
	dec := toml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}
