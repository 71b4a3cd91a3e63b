package grove

// nodeIDCounter is a plain counter (no atomic — grove is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single flat struct with a
// NodeKind tag is used for all node kinds to avoid interface dispatch on the
// hot path.
//
// A node owns its children; the Parent pointer is a non-owning back-reference
// used only for detachment. A node appears as a child of at most one parent
// at any time, and the graph is acyclic (AddChild panics on attempts to
// create a cycle).
type Node struct {
	// Identity
	ID   uint32
	Name string
	Kind NodeKind

	// Hierarchy
	Parent   *Node
	children []*Node

	// Position (world space; the graph carries no transform hierarchy)
	X, Y float64

	// Entity fields (KindEntity). Width and Height are the AABB extents;
	// Bounce is the restitution coefficient applied on horizontal
	// collision, typically in [0, 1]. OnGround is set by collision
	// resolution and cleared by the next physics step.
	Width, Height float64
	VelX, VelY    float64
	Bounce        float64
	OnGround      bool

	// Visual
	Color   Color
	Visible bool

	// Emitter field (KindEmitter)
	Emitter *Emitter

	// Optional per-node hooks (nil by default; zero cost when unused).
	// OnUpdate runs after the node's own state advances and before its
	// children update. OnRender runs after the node's default drawing and
	// before its children render.
	OnUpdate func(n *Node, dt float64)
	OnRender func(n *Node, s Surface)

	// Metadata
	UserData any
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Color = ColorWhite
	n.Visible = true
}

// NewGroup creates a group node with no state of its own.
func NewGroup(name string) *Node {
	n := &Node{Name: name, Kind: KindGroup}
	nodeDefaults(n)
	return n
}

// NewEntity creates an entity node with the given AABB extents.
// Entities integrate velocity under the world's Physics and are collected
// by the collision sweep.
func NewEntity(name string, width, height float64) *Node {
	n := &Node{Name: name, Kind: KindEntity, Width: width, Height: height}
	nodeDefaults(n)
	return n
}

// NewEmitter creates a particle emitter node with a preallocated pool.
func NewEmitter(name string, cfg EmitterConfig) *Node {
	n := &Node{Name: name, Kind: KindEmitter, Emitter: newEmitter(cfg)}
	nodeDefaults(n)
	return n
}

// HasBounds reports whether the node carries a physical AABB, i.e. whether
// the collision sweep collects it.
func (n *Node) HasBounds() bool {
	return n.Kind == KindEntity
}

// Bounds returns the node's AABB.
func (n *Node) Bounds() Rect {
	return Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children and sets the child's parent
// back-reference. If child already has a parent, it is detached from that
// parent first, preserving the single-parent invariant.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("grove: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("grove: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node, matching by identity.
// No-op if child is not a child of this node. Clears the removed node's
// parent back-reference.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.Parent != n {
		return
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
	}
	n.children = n.children[:0]
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

// --- Traversal ---

// Update advances this node's own state by dt seconds under the given
// physics, then recurses into children pre-order, depth-first. Children
// update after the node's own step so nested effects see the latest parent
// state within the same frame.
func (n *Node) Update(dt float64, p Physics) {
	if n.Kind == KindEntity {
		n.step(dt, p)
	}
	if n.OnUpdate != nil {
		n.OnUpdate(n, dt)
	}
	for _, child := range n.children {
		child.Update(dt, p)
	}
}

// Render draws this node against the surface, then recurses into children
// in the same pre-order traversal as Update. Invisible nodes are skipped
// along with their subtree.
func (n *Node) Render(s Surface) {
	if !n.Visible {
		return
	}
	switch n.Kind {
	case KindEntity:
		s.FillRect(n.X, n.Y, n.Width, n.Height, n.Color)
	case KindEmitter:
		n.Emitter.render(n.X, n.Y, s)
	}
	if n.OnRender != nil {
		n.OnRender(n, s)
	}
	for _, child := range n.children {
		child.Render(s)
	}
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
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
