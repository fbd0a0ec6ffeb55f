package memhost

import (
	"sync/atomic"

	"github.com/woozymasta/texmat"
)

// Node is a named node holding ordered leaves and child nodes.
//
// A node is in one of three states. Nodes built with NewNode are writable
// builders. Nodes of an open edit session are writable until the session
// closes. Nodes of a committed graph are frozen; Set on them returns
// texmat.ErrEditClosed.
type Node struct {
	name     string
	leaves   []*leaf
	children []*Node
	state    *treeState // nil for builders
}

// leaf is one typed value of a node.
type leaf struct {
	name     string
	val      texmat.Value
	readOnly bool
}

// treeState is shared by every node of one tree.
type treeState struct {
	closed atomic.Bool
}

// NewNode creates a writable builder node.
func NewNode(name string) *Node {
	return &Node{name: name}
}

// Name returns the node name.
func (n *Node) Name() string {
	return n.name
}

// Child returns the child named name.
func (n *Node) Child(name string) (texmat.Node, bool) {
	c := n.child(name)
	if c == nil {
		return nil, false
	}

	return c, true
}

// Get returns a copy of the leaf value named name.
func (n *Node) Get(name string) (texmat.Value, bool) {
	l := n.leaf(name)
	if l == nil {
		return texmat.Value{}, false
	}

	return l.val.Clone(), true
}

// Set overwrites the existing leaf named name.
func (n *Node) Set(name string, v texmat.Value) error {
	if n.state != nil && n.state.closed.Load() {
		return texmat.ErrEditClosed
	}

	l := n.leaf(name)
	switch {
	case l == nil:
		return texmat.ErrNoLeaf
	case l.readOnly:
		return texmat.ErrReadOnly
	case l.val.Kind != v.Kind:
		return texmat.ErrKindMismatch
	}
	l.val = v.Clone()

	return nil
}

// ReadOnly reports whether the leaf named name exists and is read-only.
func (n *Node) ReadOnly(name string) bool {
	l := n.leaf(name)
	return l != nil && l.readOnly
}

// Define adds or replaces a leaf on a builder node and returns n for chaining.
func (n *Node) Define(name string, v texmat.Value) *Node {
	if l := n.leaf(name); l != nil {
		l.val = v.Clone()
		return n
	}
	n.leaves = append(n.leaves, &leaf{name: name, val: v.Clone()})

	return n
}

// Lock marks the named leaves read-only. Unknown names are ignored.
func (n *Node) Lock(names ...string) *Node {
	for _, name := range names {
		if l := n.leaf(name); l != nil {
			l.readOnly = true
		}
	}

	return n
}

// AddChild returns the child named name, creating it when absent.
func (n *Node) AddChild(name string) *Node {
	if c := n.child(name); c != nil {
		return c
	}
	c := &Node{name: name, state: n.state}
	n.children = append(n.children, c)

	return c
}

// Remove deletes the leaf or child named name from a builder node.
func (n *Node) Remove(name string) bool {
	for i, l := range n.leaves {
		if l.name == name {
			n.leaves = append(n.leaves[:i], n.leaves[i+1:]...)
			return true
		}
	}
	for i, c := range n.children {
		if c.name == name {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return true
		}
	}

	return false
}

// LeafNames lists leaf names in definition order.
func (n *Node) LeafNames() []string {
	out := make([]string, len(n.leaves))
	for i, l := range n.leaves {
		out[i] = l.name
	}

	return out
}

// Children lists child nodes in definition order.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

func (n *Node) leaf(name string) *leaf {
	for _, l := range n.leaves {
		if l.name == name {
			return l
		}
	}

	return nil
}

func (n *Node) child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}

	return nil
}

// clone deep-copies the tree, attaching every copied node to st.
func (n *Node) clone(st *treeState) *Node {
	out := &Node{
		name:     n.name,
		leaves:   make([]*leaf, len(n.leaves)),
		children: make([]*Node, len(n.children)),
		state:    st,
	}
	for i, l := range n.leaves {
		out.leaves[i] = &leaf{name: l.name, val: l.val.Clone(), readOnly: l.readOnly}
	}
	for i, c := range n.children {
		out.children[i] = c.clone(st)
	}

	return out
}

// frozen returns a read-only copy of the tree.
func (n *Node) frozen() *Node {
	st := &treeState{}
	st.closed.Store(true)

	return n.clone(st)
}
