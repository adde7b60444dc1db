package geom

import (
	"errors"
)

// ErrMissingNode is returned (or raised by MustGlobal) when an entity that
// must be placed in the scene has no transform node.
var ErrMissingNode = errors.New("geom: missing transform node")

// Node is one pose in a transform tree. The parent is fixed at construction
// so the structure cannot form cycles; a node does not track its children.
type Node struct {
	local  Transform
	parent *Node
}

// NewNode creates a node with the given local pose. parent may be nil for a
// root node.
func NewNode(local Transform, parent *Node) *Node {
	return &Node{local: local, parent: parent}
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// LocalTransform returns the node's pose relative to its parent.
func (n *Node) LocalTransform() Transform { return n.local }

// SetLocalTransform replaces the node's local pose. Descendants observe the
// change on their next GlobalTransform call.
func (n *Node) SetLocalTransform(t Transform) { n.local = t }

// Depth returns the number of ancestors above n.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// GlobalTransform folds the local poses from the root down to n. It is
// recomputed on every call. A nil node yields ErrMissingNode.
func (n *Node) GlobalTransform() (Transform, error) {
	if n == nil {
		return Transform{}, ErrMissingNode
	}
	if n.parent == nil {
		return n.local, nil
	}

	chain := make([]Transform, 0, 4)
	for cur := n; cur != nil; cur = cur.parent {
		chain = append(chain, cur.local)
	}

	global := chain[len(chain)-1]
	for i := len(chain) - 2; i >= 0; i-- {
		global = global.Compose(chain[i])
	}
	return global, nil
}

// MustGlobal returns n's global pose and panics with ErrMissingNode if n is
// nil. Use it on paths where a missing node is a programming error that
// would otherwise corrupt detection geometry.
func MustGlobal(n *Node) Transform {
	t, err := n.GlobalTransform()
	if err != nil {
		panic(err)
	}
	return t
}
