package arbor

import "github.com/go-gl/mathgl/mgl32"

// Node is a scene graph element: a transform, a material key, a local
// bounding box and an opaque host reference. Nodes own their children;
// the parent link is a plain back-reference.
type Node struct {
	// Name for the node. It is not used by arbor except in debug output.
	Name string

	ref       any
	transform *Transform
	material  Material
	bounds    Box

	parent   *Node
	children []*Node
}

// NewNode creates a standalone node carrying ref. The node starts with no
// parent, no children, an identity transform and an empty bounding box.
// ref is never inspected; it is returned verbatim by Reference and walks.
func NewNode(ref any) *Node {
	return &Node{
		ref:       ref,
		transform: NewTransform(),
	}
}

// Reference returns the host reference the node was created with.
func (n *Node) Reference() any {
	return n.ref
}

// Transform returns the node's transform.
func (n *Node) Transform() *Transform {
	return n.transform
}

// Material returns the node's material key for reading or mutation.
func (n *Node) Material() *Material {
	return &n.material
}

// --- Bounds ---

// Min returns the min corner of the local bounding box.
func (n *Node) Min() mgl32.Vec3 { return n.bounds.Min }

// SetMin sets the min corner of the local bounding box.
func (n *Node) SetMin(x, y, z float32) {
	n.bounds.Min = mgl32.Vec3{x, y, z}
}

// Max returns the max corner of the local bounding box.
func (n *Node) Max() mgl32.Vec3 { return n.bounds.Max }

// SetMax sets the max corner of the local bounding box.
func (n *Node) SetMax(x, y, z float32) {
	n.bounds.Max = mgl32.Vec3{x, y, z}
}

// Bounds returns the local bounding box.
func (n *Node) Bounds() Box { return n.bounds }

// SetBounds sets the local bounding box.
func (n *Node) SetBounds(b Box) { n.bounds = b }

// --- Tree manipulation ---

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// SetParent moves n under parent, or detaches it when parent is nil.
// n is always removed from its current parent first, so setting the same
// parent again moves n to the end of the child list instead of adding it
// twice. The transform's parent link follows the node's parent link.
//
// parent must not be n or one of its descendants.
func (n *Node) SetParent(parent *Node) {
	if globalDebug && parent != nil {
		debugCheckCycle(n, parent)
	}
	if n.parent != nil {
		n.parent.removeChildByPtr(n)
		n.parent = nil
		n.transform.parent = nil
	}
	if parent == nil {
		return
	}
	n.parent = parent
	n.transform.parent = parent.transform
	parent.children = append(parent.children, n)
	if globalDebug {
		debugCheckTreeDepth(n)
		debugCheckChildCount(parent)
	}
}

// RemoveFromParent detaches n from its parent. Children of n stay attached
// to n. No-op if n has no parent.
func (n *Node) RemoveFromParent() {
	n.SetParent(nil)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// ForEach calls f for n and each of its descendants in depth-first
// pre-order. The tree must not be changed until ForEach returns.
func (n *Node) ForEach(f func(*Node)) {
	f(n)
	for _, child := range n.children {
		child.ForEach(f)
	}
}

// Find returns the first node named name in n's subtree, in depth-first
// pre-order, or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
