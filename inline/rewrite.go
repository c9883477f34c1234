package inline

import (
	"github.com/jcorbin/panache/config"
	"github.com/jcorbin/panache/cst"
	"github.com/jcorbin/panache/registry"
)

// verbatimKinds are the node kinds spec.md §4.4 names as opaque to the
// inline pass: their content is source bytes, not markdown, and must pass
// through unchanged. MATH_CONTENT joins the named list by extension: a math
// block's body is TeX, never inline markdown.
var verbatimKinds = map[cst.Kind]bool{
	cst.CODE_BLOCK:           true,
	cst.CODE_CONTENT:         true,
	cst.CODE_FENCE_OPEN:      true,
	cst.CODE_FENCE_CLOSE:     true,
	cst.LATEX_ENVIRONMENT:    true,
	cst.HTML_BLOCK:           true,
	cst.LINE_BLOCK_LINE:      true,
	cst.MATH_CONTENT:         true,
	cst.REFERENCE_DEFINITION: true,
	cst.YAML_METADATA:        true,
	cst.PANDOC_TITLE_BLOCK:   true,
	cst.TABLE_SEPARATOR:      true,
	cst.DIV_FENCE_OPEN:       true,
	cst.DIV_FENCE_CLOSE:      true,
}

// Parse re-walks tree, the block pass's output, and expands every
// inline-bearing TEXT run into emphasis/strong/link/code-span/math/etc.
// structure (spec.md §4.4), consulting reg to resolve reference links,
// reference images, and footnote references. It returns a new tree; the
// input tree is left untouched, matching the green tree's immutability.
func Parse(tree *cst.Node, reg *registry.Registry, cfg config.Config) *cst.Node {
	return rewriteNode(tree, reg, cfg)
}

func rewriteNode(n *cst.Node, reg *registry.Registry, cfg config.Config) *cst.Node {
	if verbatimKinds[n.Kind()] {
		return n
	}

	children := n.Children()
	out := make([]cst.Element, 0, len(children))

	i := 0
	for i < len(children) {
		if isInlineText(children[i]) {
			j := i
			for j < len(children) && isInlineText(children[j]) {
				j++
			}
			out = append(out, expandRun(children[i:j], reg, cfg)...)
			i = j
			continue
		}
		switch c := children[i].(type) {
		case *cst.Node:
			out = append(out, rewriteNode(c, reg, cfg))
		default:
			out = append(out, children[i])
		}
		i++
	}

	return cst.NewNode(n.Kind(), out...)
}

func isInlineText(e cst.Element) bool {
	k := e.Kind()
	return k == cst.TEXT || k == cst.NEWLINE
}

// expandRun concatenates a maximal run of direct-child TEXT/NEWLINE tokens
// into one string, scans and resolves it, and returns the replacement
// element sequence.
func expandRun(run []cst.Element, reg *registry.Registry, cfg config.Config) []cst.Element {
	var text string
	for _, e := range run {
		text += e.Text()
	}
	if text == "" {
		return nil
	}
	atoms := scan(text, reg, cfg)
	return resolve(atoms)
}
