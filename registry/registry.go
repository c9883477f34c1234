// Package registry implements the ReferenceRegistry side channel described
// in spec.md §3/§9: a mapping from normalized link labels to their
// destination, plus a set of known footnote IDs, produced by the block pass
// and consulted (read-only) by the inline pass.
package registry

import "strings"

// Definition is the value side of a reference-label entry: a destination
// URL and an optional title.
type Definition struct {
	URL   string
	Title string
}

// Registry collects reference-link/image definitions and footnote IDs
// discovered during the block pass. It is the "second return value"
// spec.md §9 describes: not part of the CST, but produced alongside it and
// consumed by the inline pass to resolve `[text][ref]` / `![alt][ref]` /
// `[^id]`.
type Registry struct {
	refs      map[string]Definition
	footnotes map[string]bool
}

// New returns an empty Registry ready for block-pass population.
func New() *Registry {
	return &Registry{
		refs:      make(map[string]Definition),
		footnotes: make(map[string]bool),
	}
}

// NormalizeLabel implements spec.md §3's matching rule: case-insensitive,
// inner whitespace collapsed to single spaces, outer whitespace trimmed.
func NormalizeLabel(label string) string {
	fields := strings.Fields(label)
	return strings.ToLower(strings.Join(fields, " "))
}

// Define records a reference definition under label, normalizing it first.
// A later Define for the same normalized label is ignored: CommonMark and
// Pandoc both resolve to the first definition seen.
func (r *Registry) Define(label, url, title string) {
	key := NormalizeLabel(label)
	if _, exists := r.refs[key]; exists {
		return
	}
	r.refs[key] = Definition{URL: url, Title: title}
}

// Lookup resolves label (normalized per NormalizeLabel) to its Definition.
func (r *Registry) Lookup(label string) (Definition, bool) {
	d, ok := r.refs[NormalizeLabel(label)]
	return d, ok
}

// DefineFootnote records id as a known footnote identifier.
func (r *Registry) DefineFootnote(id string) {
	r.footnotes[id] = true
}

// HasFootnote reports whether id was registered by DefineFootnote.
func (r *Registry) HasFootnote(id string) bool {
	return r.footnotes[id]
}

// Labels returns every normalized reference label currently defined, for
// diagnostics and tests; order is unspecified.
func (r *Registry) Labels() []string {
	out := make([]string, 0, len(r.refs))
	for k := range r.refs {
		out = append(out, k)
	}
	return out
}
