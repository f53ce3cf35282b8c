package bbcode

// rootIndex is the synthetic container every parse starts with.
const rootIndex = 0

// Element is a single node in a parsed tree. All nodes but the root carry
// a TagKind; text leaves carry their literal content in Text. The tree
// owns every Element by value in one slice — parent/child links are
// indices into that slice, never pointers, so the structure can never
// contain a cycle.
type Element struct {
	Kind     TagKind
	Name     string // lowercased tag name, empty for text/root
	Argument string
	HasArg   bool
	Raw      string // literal open-bracket source, case preserved
	CloseRaw string // literal close-bracket source, if the writer supplied one
	Text     string // leaf content; meaningful when len(Children) == 0
	Broken   bool
	Parent   int
	Children []int
}

// Tree is the arena: every node referenced by the parser or constructor
// lives in Nodes, addressed by integer index. Index 0 is always the root.
type Tree struct {
	Nodes []Element
}

// newTree allocates a tree containing only its synthetic root.
func newTree() *Tree {
	return &Tree{Nodes: []Element{{Kind: Plain, Parent: -1}}}
}

// addChild appends a new node as the last child of parent and returns its
// index.
func (t *Tree) addChild(parent int, el Element) int {
	el.Parent = parent
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, el)
	t.Nodes[parent].Children = append(t.Nodes[parent].Children, idx)
	return idx
}

// Root returns the index of the synthetic root element.
func (t *Tree) Root() int { return rootIndex }

// At returns the node at idx by value. Callers that need to mutate a node
// in place (e.g. the parser recording CloseRaw) must write back through
// t.Nodes[idx] directly rather than holding a copy.
func (t *Tree) At(idx int) Element { return t.Nodes[idx] }
