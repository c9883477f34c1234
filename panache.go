// Package panache implements a Pandoc-flavored Markdown parser and
// formatter: a lossless CST (package cst), a two-stage parser (packages
// blocks and inline), and a normalizing renderer (package format). Parse
// and Format are the whole-document entry points spec.md §6 names; config
// discovery/merging and code-block-formatter subprocesses are excluded
// external collaborators the caller supplies.
package panache

import (
	"github.com/jcorbin/panache/blocks"
	"github.com/jcorbin/panache/config"
	"github.com/jcorbin/panache/cst"
	"github.com/jcorbin/panache/format"
	"github.com/jcorbin/panache/inline"
	"github.com/jcorbin/panache/registry"
)

// Registry re-exports registry.Registry so callers depending only on this
// package's API never need to import the registry package directly.
type Registry = registry.Registry

// CodeBlockOverrides re-exports format.CodeBlockOverrides, the external
// code-formatter seam (spec.md §5).
type CodeBlockOverrides = format.CodeBlockOverrides

// Parse runs the block pass followed by the inline pass over input,
// returning the completed CST and the reference/footnote registry the
// block pass accumulated along the way.
func Parse(input string, cfg config.Config) (*cst.Node, *Registry) {
	blockTree, reg := blocks.Parse(input, cfg)
	tree := inline.Parse(blockTree, reg, cfg)
	return tree, reg
}

// Format renders tree to normalized Markdown text per cfg, consulting
// overrides for any code block whose content has an externally formatted
// replacement.
func Format(tree *cst.Node, cfg config.Config, overrides CodeBlockOverrides) (string, error) {
	return format.Format(tree, cfg, overrides)
}
