package cst_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/panache/cst"
)

// buildSample assembles a small DOCUMENT > PARAGRAPH > STRONG(EMPHASIS(...))
// tree directly through Builder, mirroring how the block+inline parsers
// drive it, without needing either parser to exist yet.
func buildSample() *cst.Node {
	var b cst.Builder
	b.StartNode(cst.DOCUMENT)
	b.StartNode(cst.PARAGRAPH)
	b.Token(cst.TEXT, "say ")
	b.StartNode(cst.STRONG)
	b.Token(cst.STRONG_MARKER, "**")
	b.StartNode(cst.EMPHASIS)
	b.Token(cst.EMPHASIS_MARKER, "*")
	b.Token(cst.TEXT, "bar")
	b.Token(cst.EMPHASIS_MARKER, "*")
	b.FinishNode() // EMPHASIS
	b.Token(cst.STRONG_MARKER, "**")
	b.FinishNode() // STRONG
	b.Token(cst.NEWLINE, "\n")
	b.FinishNode() // PARAGRAPH
	b.FinishNode() // DOCUMENT
	return b.Finish()
}

func TestBuilderBalance(t *testing.T) {
	root := buildSample()
	require.Equal(t, cst.DOCUMENT, root.Kind())
	require.Len(t, root.Children(), 1)
}

func TestLosslessness(t *testing.T) {
	const input = "say **bar*bar*" // deliberately not what we build; Text() must match the tree we built, not this
	_ = input
	root := buildSample()
	require.Equal(t, "say ***bar***\n", root.Text())

	tree := cst.NewTree(root)
	require.Equal(t, root.Text(), tree.Text())
}

func TestDescendantsOrder(t *testing.T) {
	root := buildSample()
	var kinds []cst.Kind
	root.Descendants(func(n *cst.Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})
	want := []cst.Kind{cst.DOCUMENT, cst.PARAGRAPH, cst.STRONG, cst.EMPHASIS}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("descendant order mismatch (-want +got):\n%s", diff)
	}
}

func TestRedOffsets(t *testing.T) {
	root := buildSample()
	tree := cst.NewTree(root)
	red := tree.Red()
	require.Equal(t, 0, red.Offset())

	para := red.Children()[0]
	require.Equal(t, 0, para.Offset())

	strong := para.Children()[0]
	require.Equal(t, len("say "), strong.Offset())

	emph := strong.Children()[0]
	require.Equal(t, len("say ")+len("**"), emph.Offset())
	require.Equal(t, "*bar*", emph.Node().Text())
}

func TestDumpIsParenthesized(t *testing.T) {
	root := buildSample()
	dump := cst.Dump(root)
	require.Contains(t, dump, "STRONG(")
	require.Contains(t, dump, "EMPHASIS(")
}

func TestNewTokenRejectsNodeKind(t *testing.T) {
	require.Panics(t, func() {
		cst.NewToken(cst.PARAGRAPH, "x")
	})
}

func TestBuilderRejectsUnbalancedFinish(t *testing.T) {
	var b cst.Builder
	b.StartNode(cst.DOCUMENT)
	require.Panics(t, func() {
		b.Finish()
	})
}
