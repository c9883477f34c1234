package cst

// Builder assembles a green tree in a single forward pass: Token appends a
// leaf, StartNode/FinishNode open and close an interior node. It generalizes
// the teacher's BlockStack, which paired every pushed Block with a node that
// had to be closed in LIFO order (scandown/block.go's matchPrior/close-to-depth
// dance); here that discipline is made explicit and reusable by both the
// block and inline parsers instead of being folded into one scanning loop.
//
// Builder is not safe for concurrent use; it is meant to be driven by a
// single synchronous parse loop, exactly like BlockStack.Scan.
type Builder struct {
	stack    []frame
	finished *Node
}

type frame struct {
	kind     Kind
	children []Element
}

// StartNode opens a new node of kind. It must be matched by a later
// FinishNode call; violating this balance is the one hard failure mode the
// block pass admits (spec.md §4.3.5).
func (b *Builder) StartNode(kind Kind) {
	if !kind.IsNode() {
		panic("cst: StartNode given a non-node kind: " + kind.String())
	}
	b.stack = append(b.stack, frame{kind: kind})
}

// Token appends a leaf token as a child of the currently open node.
func (b *Builder) Token(kind Kind, text string) {
	if len(b.stack) == 0 {
		panic("cst: Token called with no open node")
	}
	top := len(b.stack) - 1
	b.stack[top].children = append(b.stack[top].children, NewToken(kind, text))
}

// PushToken appends an already-constructed Token, used when a recognizer
// hands back a Token value directly instead of (kind, text).
func (b *Builder) PushToken(t Token) {
	if len(b.stack) == 0 {
		panic("cst: PushToken called with no open node")
	}
	top := len(b.stack) - 1
	b.stack[top].children = append(b.stack[top].children, t)
}

// PushNode appends an already-constructed Node as a child of the currently
// open node, without opening a new frame. Used by the inline parser to graft
// a fully resolved subtree (e.g. an EMPHASIS node) into an in-progress parent.
func (b *Builder) PushNode(n *Node) {
	if len(b.stack) == 0 {
		panic("cst: PushNode called with no open node")
	}
	top := len(b.stack) - 1
	b.stack[top].children = append(b.stack[top].children, n)
}

// FinishNode closes the most recently opened node, attaching it as a child
// of its parent frame (or, if it was the root, making it retrievable via
// Finish).
func (b *Builder) FinishNode() *Node {
	if len(b.stack) == 0 {
		panic("cst: FinishNode called with no open node")
	}
	top := len(b.stack) - 1
	f := b.stack[top]
	b.stack = b.stack[:top]
	n := NewNode(f.kind, f.children...)
	if len(b.stack) > 0 {
		parent := len(b.stack) - 1
		b.stack[parent].children = append(b.stack[parent].children, n)
	} else {
		b.finished = n
	}
	return n
}

// Depth reports how many nodes are currently open, mirroring
// BlockStack.Len's role of reporting container-stack depth.
func (b *Builder) Depth() int { return len(b.stack) }

// TopKind reports the kind of the currently open (innermost) node, or
// Invalid if no node is open.
func (b *Builder) TopKind() Kind {
	if len(b.stack) == 0 {
		return Invalid
	}
	return b.stack[len(b.stack)-1].kind
}

// Finish returns the completed root tree. It must be called only after the
// outermost StartNode has been matched by FinishNode (Depth() == 0).
func (b *Builder) Finish() *Node {
	if len(b.stack) != 0 {
		panic("cst: Finish called with unbalanced StartNode/FinishNode")
	}
	return b.finished
}
