package cst

import "strings"

// Element is either a *Node or a Token, interleaved as children of a Node in
// document order. It plays the role of rust-analyzer's NodeOrToken.
type Element interface {
	Kind() Kind
	Text() string
	Len() int

	elementSealed()
}

// Token is a leaf element: one contiguous run of input bytes with a single
// Kind. The losslessness invariant (spec.md §3) requires that every input
// byte appear in exactly one Token.
type Token struct {
	kind Kind
	text string
}

// NewToken constructs a Token. It panics if kind does not identify a token
// kind, matching the builder-balance discipline the green tree depends on.
func NewToken(kind Kind, text string) Token {
	if !kind.IsToken() {
		panic("cst: NewToken given a non-token kind: " + kind.String())
	}
	return Token{kind: kind, text: text}
}

// Kind implements Element.
func (t Token) Kind() Kind { return t.kind }

// Text implements Element: the token's exact source bytes.
func (t Token) Text() string { return t.text }

// Len implements Element.
func (t Token) Len() int { return len(t.text) }

func (Token) elementSealed() {}

// Node is an interior green-tree element: a typed, ordered list of children
// (nodes and/or tokens). Nodes are immutable once built by Builder.
type Node struct {
	kind     Kind
	children []Element
	text     string // memoized concatenation of all descendant token text
}

// NewNode constructs a Node directly from already-built children. Builder is
// the normal way to construct a tree; NewNode exists for the inline parser,
// which assembles replacement subtrees outside of a single forward pass.
func NewNode(kind Kind, children ...Element) *Node {
	if !kind.IsNode() {
		panic("cst: NewNode given a non-node kind: " + kind.String())
	}
	n := &Node{kind: kind, children: children}
	n.text = n.computeText()
	return n
}

func (n *Node) computeText() string {
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.Text())
	}
	return b.String()
}

// Kind implements Element.
func (n *Node) Kind() Kind { return n.kind }

// Text implements Element: the concatenation of every descendant token's
// text, in document order. This equals the exact source substring the node
// covers (the losslessness invariant, spec.md §3).
func (n *Node) Text() string { return n.text }

// Len implements Element.
func (n *Node) Len() int { return len(n.text) }

func (*Node) elementSealed() {}

// Children returns the node's direct children, nodes and tokens interleaved,
// matching rust-analyzer's children_with_tokens.
func (n *Node) Children() []Element { return n.children }

// ChildNodes returns only the direct child Nodes, skipping tokens.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	for _, c := range n.children {
		if cn, ok := c.(*Node); ok {
			out = append(out, cn)
		}
	}
	return out
}

// FirstChildNode returns the first direct child of kind, or nil.
func (n *Node) FirstChildNode(kind Kind) *Node {
	for _, c := range n.children {
		if cn, ok := c.(*Node); ok && cn.kind == kind {
			return cn
		}
	}
	return nil
}

// Tokens returns only the direct child Tokens, skipping nodes.
func (n *Node) Tokens() []Token {
	var out []Token
	for _, c := range n.children {
		if t, ok := c.(Token); ok {
			out = append(out, t)
		}
	}
	return out
}

// Descendants yields every Node in the subtree rooted at n, in document
// order, depth-first, including n itself.
func (n *Node) Descendants(yield func(*Node) bool) {
	if !yield(n) {
		return
	}
	for _, c := range n.children {
		if cn, ok := c.(*Node); ok {
			done := false
			cn.Descendants(func(d *Node) bool {
				if !yield(d) {
					done = true
					return false
				}
				return true
			})
			if done {
				return
			}
		}
	}
}

// Walk is a convenience alias for Descendants matching spec.md §9's
// "read-only traversal" seam for external collaborators like a linter.
func (n *Node) Walk(yield func(*Node) bool) { n.Descendants(yield) }
