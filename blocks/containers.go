package blocks

import "github.com/jcorbin/panache/cst"

// ContainerKind identifies which of spec.md §4.2's container table entries
// a stack entry represents.
type ContainerKind int

// Supported ContainerKind values, matching spec.md §4.2's table rows.
const (
	ContainerDocument ContainerKind = iota
	ContainerParagraph
	ContainerBlockQuote
	ContainerList
	ContainerListItem
	ContainerFootnoteDefinition
	ContainerDefinition
	ContainerDefinitionItem
	ContainerDefinitionList
	ContainerFencedDiv
)

// Container is one LIFO entry of the block parser's open-container stack
// (spec.md §4.2). It generalizes the teacher's Block/BlockType pair: where
// BlockStack stored one flat (Type, Delim, Width, Indent) tuple per frame,
// Container keeps the same shape but names its fields per spec.md's table
// instead of overloading three bytes across every block type.
type Container struct {
	Kind ContainerKind
	Node cst.Kind // the cst node kind this container's StartNode/FinishNode pair uses

	ContentCol int // Paragraph, BlockQuote, ListItem, FootnoteDefinition, Definition

	MarkerKind     ListMarkerKind // List
	DelimStyle     DelimiterStyle // List
	BaseIndentCols int            // List: column the marker started at

	FootnoteID string // FootnoteDefinition

	InDefinition bool // DefinitionItem: whether its ":"/"~" marker has been seen
}

// Stack is the block parser's LIFO container stack plus the paired green
// tree builder, kept in lockstep per spec.md §9's "single most important
// implementation invariant": every Push is preceded by a builder.StartNode
// of the corresponding kind, and every CloseTo finishes builder nodes in
// the same LIFO order.
type Stack struct {
	entries []Container
	Builder cst.Builder
}

// NewStack returns a Stack with its DOCUMENT root already opened.
func NewStack() *Stack {
	s := &Stack{}
	s.Builder.StartNode(cst.DOCUMENT)
	s.entries = append(s.entries, Container{Kind: ContainerDocument, Node: cst.DOCUMENT})
	return s
}

// Depth reports how many containers (including the DOCUMENT root) are open.
func (s *Stack) Depth() int { return len(s.entries) }

// Top returns the innermost open container.
func (s *Stack) Top() Container { return s.entries[len(s.entries)-1] }

// At returns the container at depth i (0 == DOCUMENT root).
func (s *Stack) At(i int) Container { return s.entries[i] }

// SetTop replaces the innermost open container's state, used when a List
// container's marker/indent needs updating as sibling Items are discovered
// (mirroring scandown/block.go's "update parent list indent" step).
func (s *Stack) SetTop(c Container) { s.entries[len(s.entries)-1] = c }

// Push opens a new container of kind c, starting the matching builder node.
func (s *Stack) Push(c Container) {
	s.Builder.StartNode(c.Node)
	s.entries = append(s.entries, c)
}

// CloseTo pops containers down to (but not including) depth, finishing
// their builder nodes in LIFO order. depth must be <= Depth().
func (s *Stack) CloseTo(depth int) {
	for len(s.entries) > depth {
		s.entries = s.entries[:len(s.entries)-1]
		s.Builder.FinishNode()
	}
}

// Finish closes every remaining open container (including DOCUMENT) and
// returns the completed tree root.
func (s *Stack) Finish() *cst.Node {
	s.CloseTo(0) // pops every entry, including the DOCUMENT root, finishing each builder frame in turn
	return s.Builder.Finish()
}

// Kinds returns the ContainerKind of every open container, innermost last.
func (s *Stack) Kinds() []ContainerKind {
	out := make([]ContainerKind, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Kind
	}
	return out
}
