package blocks_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/panache/blocks"
	"github.com/jcorbin/panache/config"
	"github.com/jcorbin/panache/cst"
)

func TestParseLosslessRoundTrip(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	cases := []string{
		"# A Header\n\nA paragraph.\n",
		"- a thing\n- an other thing\n",
		"> a quote\n> continued\n",
		"```go\nfmt.Println(1)\n```\n",
		"Header\n======\n",
		"A rule follows.\n\n---\n",
		"Term\n:   Definition text.\n",
	}
	for _, input := range cases {
		input := input
		t.Run(input, func(t *testing.T) {
			tree, _ := blocks.Parse(input, cfg)
			require.Equal(t, input, tree.Text())
		})
	}
}

func TestParseBulletListContinuation(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	tree, _ := blocks.Parse("- a thing\n- an other thing\n", cfg)

	list := tree.FirstChildNode(cst.LIST)
	require.NotNil(t, list)
	items := list.ChildNodes()
	require.Len(t, items, 2)
	for _, item := range items {
		require.Equal(t, cst.LIST_ITEM, item.Kind())
	}
}

func TestParseNestedList(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	input := "1. outer\n   - inner\n2. sibling\n"
	tree, _ := blocks.Parse(input, cfg)
	require.Equal(t, input, tree.Text())

	outerList := tree.FirstChildNode(cst.LIST)
	require.NotNil(t, outerList)
	firstItem := outerList.ChildNodes()[0]
	require.Equal(t, cst.LIST_ITEM, firstItem.Kind())

	innerList := firstItem.FirstChildNode(cst.LIST)
	require.NotNil(t, innerList, "nested bullet list under first ordered item")
}

func TestParseBlockquoteWrapsHeading(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	input := "> ### nested heading\n>\n>     indented code inside quote\n"
	tree, _ := blocks.Parse(input, cfg)
	require.Equal(t, input, tree.Text())

	bq := tree.FirstChildNode(cst.BLOCKQUOTE)
	require.NotNil(t, bq)
	require.NotNil(t, bq.FirstChildNode(cst.HEADING))
}

func TestParseReferenceDefinitionPopulatesRegistry(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	input := "[foo]: /url \"title\"\n"
	_, reg := blocks.Parse(input, cfg)
	def, ok := reg.Lookup(reg.Labels()[0])
	require.True(t, ok)
	require.Equal(t, "/url", def.URL)
	require.Equal(t, "title", def.Title)
}

func TestParseFootnoteDefinitionRegistersID(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	input := "[^1]: a note\n"
	_, reg := blocks.Parse(input, cfg)
	require.True(t, reg.HasFootnote("1"))
}

func TestParsePipeTable(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	input := "| a | b |\n| - | - |\n| 1 | 2 |\n"
	tree, _ := blocks.Parse(input, cfg)
	require.Equal(t, input, tree.Text())

	table := tree.FirstChildNode(cst.PIPE_TABLE)
	require.NotNil(t, table)
	require.NotNil(t, table.FirstChildNode(cst.TABLE_HEADER))
	require.NotNil(t, table.FirstChildNode(cst.TABLE_SEPARATOR))
}

func TestParseFencedDiv(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	input := "::: warning\ntext inside\n:::\n"
	tree, _ := blocks.Parse(input, cfg)
	require.Equal(t, input, tree.Text())

	div := tree.FirstChildNode(cst.FENCED_DIV)
	require.NotNil(t, div)
}

func TestParseDocumentKindsMatchExpectedShape(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	tree, _ := blocks.Parse("# H\n\npara one\n", cfg)
	var kinds []cst.Kind
	tree.Walk(func(n *cst.Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})
	want := []cst.Kind{cst.DOCUMENT, cst.HEADING, cst.HEADING_CONTENT, cst.PARAGRAPH}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("unexpected node shape (-want +got):\n%s", diff)
	}
}

func TestParseDefinitionListNestsTermUnderItem(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	input := "Term\n:   Definition text.\n"
	tree, _ := blocks.Parse(input, cfg)
	require.Equal(t, input, tree.Text())

	list := tree.FirstChildNode(cst.DEFINITION_LIST)
	require.NotNil(t, list)
	item := list.FirstChildNode(cst.DEFINITION_ITEM)
	require.NotNil(t, item)
	term := item.FirstChildNode(cst.TERM)
	require.NotNil(t, term)
	require.Equal(t, "Term", strings.TrimRight(term.Text(), "\n"))
	require.NotNil(t, item.FirstChildNode(cst.DEFINITION))
}
