package inline_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcorbin/panache/blocks"
	"github.com/jcorbin/panache/config"
	"github.com/jcorbin/panache/cst"
	"github.com/jcorbin/panache/inline"
)

func parseInline(t *testing.T, input string) *cst.Node {
	t.Helper()
	cfg := config.Default(config.FlavorPandoc)
	tree, reg := blocks.Parse(input, cfg)
	return inline.Parse(tree, reg, cfg)
}

func TestParseLosslessRoundTrip(t *testing.T) {
	cases := []string{
		"plain text\n",
		"*emphasis*\n",
		"**strong**\n",
		"***strong emphasis***\n",
		"a *mid* sentence\n",
		"`code span`\n",
		"`` code with ` backtick ``\n",
		"[a link](http://example.com \"title\")\n",
		"[ref link][ref]\n\n[ref]: /url\n",
		"an autolink <http://example.com>\n",
		"strikeout ~~gone~~ text\n",
		"superscript x^2^ here\n",
		"subscript H~2~O\n",
		"inline math $x + y$ done\n",
		"escaped \\* star\n",
	}
	for _, input := range cases {
		input := input
		t.Run(input, func(t *testing.T) {
			tree := parseInline(t, input)
			require.Equal(t, input, tree.Text())
		})
	}
}

func TestEmphasisResolvesToNode(t *testing.T) {
	tree := parseInline(t, "a *word* b\n")
	var found *cst.Node
	tree.Walk(func(n *cst.Node) bool {
		if n.Kind() == cst.EMPHASIS {
			found = n
		}
		return true
	})
	require.NotNil(t, found)
	require.Equal(t, "*word*", found.Text())
}

func TestStrongResolvesToNode(t *testing.T) {
	tree := parseInline(t, "a **word** b\n")
	var found *cst.Node
	tree.Walk(func(n *cst.Node) bool {
		if n.Kind() == cst.STRONG {
			found = n
		}
		return true
	})
	require.NotNil(t, found)
	require.Equal(t, "**word**", found.Text())
}

func TestCodeSpanNotExpandedForEmphasis(t *testing.T) {
	tree := parseInline(t, "`*not emphasis*`\n")
	var strong, em *cst.Node
	tree.Walk(func(n *cst.Node) bool {
		if n.Kind() == cst.STRONG {
			strong = n
		}
		if n.Kind() == cst.EMPHASIS {
			em = n
		}
		return true
	})
	require.Nil(t, strong)
	require.Nil(t, em)
}

func TestFootnoteReferenceResolvesOnlyWhenRegistered(t *testing.T) {
	tree := parseInline(t, "see [^1] here\n\n[^1]: a note\n")
	var found *cst.Node
	tree.Descendants(func(n *cst.Node) bool {
		if n.Kind() == cst.FOOTNOTE_REFERENCE_NODE {
			found = n
		}
		return true
	})
	require.NotNil(t, found)
}

func TestIndentedCodeBlockStaysVerbatim(t *testing.T) {
	input := "    *not emphasis*\n"
	tree := parseInline(t, input)
	require.Equal(t, input, tree.Text())
	var em *cst.Node
	tree.Walk(func(n *cst.Node) bool {
		if n.Kind() == cst.EMPHASIS {
			em = n
		}
		return true
	})
	require.Nil(t, em, "indented code content must not be inline-parsed")
}
