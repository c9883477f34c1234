package cst

import (
	"fmt"
	"strings"
)

// Tree is the red-tree wrapper around a green Node root: it adds parent
// pointers and absolute byte offsets, computed lazily on traversal rather
// than stored redundantly in the (immutable, shareable) green tree itself.
type Tree struct {
	root *Node
}

// NewTree wraps a completed green Node root for navigation.
func NewTree(root *Node) *Tree { return &Tree{root: root} }

// Root returns the green root node.
func (t *Tree) Root() *Node { return t.root }

// Text returns the tree's full source text; for a tree rooted at DOCUMENT
// this must equal the original input byte-for-byte (spec.md §3).
func (t *Tree) Text() string {
	if t.root == nil {
		return ""
	}
	return t.root.Text()
}

// Red is a parent- and offset-aware view onto a single green Node, created
// on demand while walking a Tree. Red values are cheap and disposable; they
// do not need to be retained across mutations because the green tree never
// mutates.
type Red struct {
	node   *Node
	parent *Red
	offset int // absolute byte offset of node's first byte within the tree
}

// Red returns a navigable red-tree view rooted at the tree's root.
func (t *Tree) Red() *Red {
	if t.root == nil {
		return nil
	}
	return &Red{node: t.root}
}

// Node returns the wrapped green node.
func (r *Red) Node() *Node { return r.node }

// Parent returns the red-tree parent, or nil at the root.
func (r *Red) Parent() *Red { return r.parent }

// Offset returns the absolute byte offset of this node's first byte.
func (r *Red) Offset() int { return r.offset }

// End returns the absolute byte offset one past this node's last byte.
func (r *Red) End() int { return r.offset + r.node.Len() }

// Children returns red-tree views of the node's direct node children, in
// document order, each carrying its absolute offset and parent pointer.
func (r *Red) Children() []*Red {
	var out []*Red
	offset := r.offset
	for _, c := range r.node.children {
		switch c := c.(type) {
		case *Node:
			out = append(out, &Red{node: c, parent: r, offset: offset})
			offset += c.Len()
		case Token:
			offset += c.Len()
		}
	}
	return out
}

// Dump renders a parenthesized debug tree, each token followed by its quoted
// text, e.g. PARAGRAPH(TEXT"a " STRONG(STRONG_MARKER"**" TEXT"b" STRONG_MARKER"**")),
// matching the spirit of the teacher's BlockStack.Format verbose mode
// (scandown/fmt.go) adapted for a nested tree instead of a flat stack.
func Dump(e Element) string {
	var b strings.Builder
	dump(&b, e)
	return b.String()
}

func dump(b *strings.Builder, e Element) {
	switch e := e.(type) {
	case *Node:
		fmt.Fprintf(b, "%v(", e.kind)
		for i, c := range e.children {
			if i > 0 {
				b.WriteByte(' ')
			}
			dump(b, c)
		}
		b.WriteByte(')')
	case Token:
		fmt.Fprintf(b, "%v%q", e.kind, e.text)
	}
}
