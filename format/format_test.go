package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcorbin/panache"
	"github.com/jcorbin/panache/config"
	"github.com/jcorbin/panache/format"
)

func render(t *testing.T, input string, cfg config.Config) string {
	t.Helper()
	tree, _ := panache.Parse(input, cfg)
	out, err := format.Format(tree, cfg, nil)
	require.NoError(t, err)
	return out
}

func TestFormatHeadingSynthesizesID(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	out := render(t, "# Hello World\n", cfg)
	require.Equal(t, "# Hello World {#hello-world}\n", out)
}

func TestFormatHeadingPreservesExplicitID(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	out := render(t, "# Hello World {#custom-id}\n", cfg)
	require.Equal(t, "# Hello World {#custom-id}\n", out)
}

func TestFormatHorizontalRule(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	out := render(t, "a\n\n***\n", cfg)
	require.True(t, strings.Contains(out, "\n---\n"))
}

func TestFormatParagraphReflow(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	cfg.LineWidth = 20
	words := strings.Repeat("word ", 20)
	out := render(t, strings.TrimSpace(words)+"\n", cfg)
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		require.LessOrEqual(t, len(line), 20)
	}
}

func TestFormatBlockquotePrefix(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	out := render(t, "> a quote\n> continued\n", cfg)
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		require.True(t, strings.HasPrefix(line, "> "))
	}
}

func TestFormatCodeBlockWidensFence(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	out := render(t, "```\nhas ``` inside\n```\n", cfg)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Equal(t, "````", lines[0])
	require.Equal(t, "````", lines[len(lines)-1])
}

func TestFormatPipeTableAlignsColumns(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	out := render(t, "a|bb\n-|-:\n1|2\n", cfg)
	require.True(t, strings.Contains(out, "|"))
	require.True(t, strings.Contains(out, ":"))
}

func TestFormatListMarkerAlignment(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	out := render(t, "- a\n- b\n", cfg)
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if line == "" {
			continue
		}
		require.True(t, strings.HasPrefix(line, "- "))
	}
}
