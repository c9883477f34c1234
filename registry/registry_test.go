package registry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcorbin/panache/registry"
)

func TestNormalizeLabel(t *testing.T) {
	cases := map[string]string{
		"Foo Bar":      "foo bar",
		"foo   bar":    "foo bar",
		"  FOO\tBAR  ": "foo bar",
	}
	for in, want := range cases {
		require.Equal(t, want, registry.NormalizeLabel(in))
	}
}

func TestDefineAndLookup(t *testing.T) {
	r := registry.New()
	r.Define("Foo Bar", "https://example.com", "a title")

	d, ok := r.Lookup("foo   BAR")
	require.True(t, ok)
	require.Equal(t, "https://example.com", d.URL)
	require.Equal(t, "a title", d.Title)

	_, ok = r.Lookup("nope")
	require.False(t, ok)
}

func TestDefineFirstWins(t *testing.T) {
	r := registry.New()
	r.Define("x", "first", "")
	r.Define("x", "second", "")

	d, ok := r.Lookup("x")
	require.True(t, ok)
	require.Equal(t, "first", d.URL)
}

func TestFootnotes(t *testing.T) {
	r := registry.New()
	require.False(t, r.HasFootnote("1"))
	r.DefineFootnote("1")
	require.True(t, r.HasFootnote("1"))
}
