package grove

import "testing"

// --- Constructor defaults ---

func TestNewGroupDefaults(t *testing.T) {
	n := NewGroup("test")
	assertNodeDefaults(t, n, "test", KindGroup)
}

func TestNewEntityDefaults(t *testing.T) {
	n := NewEntity("crate", 32, 16)
	assertNodeDefaults(t, n, "crate", KindEntity)
	if n.Width != 32 || n.Height != 16 {
		t.Errorf("extents = (%v, %v), want (32, 16)", n.Width, n.Height)
	}
	if !n.HasBounds() {
		t.Error("entity should have bounds")
	}
}

func TestNewEmitterDefaults(t *testing.T) {
	n := NewEmitter("sparks", EmitterConfig{})
	assertNodeDefaults(t, n, "sparks", KindEmitter)
	if n.Emitter == nil {
		t.Fatal("Emitter should be set")
	}
	if n.HasBounds() {
		t.Error("emitter should not have bounds")
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, kind NodeKind) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Kind != kind {
		t.Errorf("Kind = %d, want %d", n.Kind, kind)
	}
	if n.Color != ColorWhite {
		t.Errorf("Color = %v, want white", n.Color)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if n.Parent != nil {
		t.Error("Parent should be nil")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewEntity("c", 1, 1)
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs should be unique: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

// --- AddChild ---

func TestAddChildBasic(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
	if parent.ChildAt(0) != child {
		t.Error("ChildAt(0) should be child")
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewGroup("p1")
	p2 := NewGroup("p2")
	child := NewGroup("child")

	p1.AddChild(child)
	if p1.NumChildren() != 1 {
		t.Fatal("p1 should have 1 child")
	}

	p2.AddChild(child)
	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if p2.NumChildren() != 1 {
		t.Error("p2 should have 1 child")
	}
	if child.Parent != p2 {
		t.Error("child.Parent should be p2")
	}
}

func TestAddChildCyclePanic(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	grandchild := NewGroup("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for cycle, got none")
		}
	}()
	grandchild.AddChild(parent) // should panic
}

func TestAddChildSelfPanic(t *testing.T) {
	n := NewGroup("self")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for self-add, got none")
		}
	}()
	n.AddChild(n)
}

func TestAddChildNilPanic(t *testing.T) {
	n := NewGroup("n")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil child, got none")
		}
	}()
	n.AddChild(nil)
}

// --- RemoveChild ---

func TestRemoveChild(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	parent.AddChild(child)
	parent.RemoveChild(child)

	if parent.NumChildren() != 0 {
		t.Error("parent should have 0 children")
	}
	if child.Parent != nil {
		t.Error("child.Parent should be nil")
	}
}

func TestRemoveChildNotAChildNoOp(t *testing.T) {
	p1 := NewGroup("p1")
	p2 := NewGroup("p2")
	child := NewGroup("child")
	p1.AddChild(child)

	p2.RemoveChild(child) // not p2's child; silent no-op

	if child.Parent != p1 {
		t.Error("child.Parent should still be p1")
	}
	if p1.NumChildren() != 1 {
		t.Error("p1 should still have 1 child")
	}
}

func TestRemoveChildNilNoOp(t *testing.T) {
	n := NewGroup("n")
	n.RemoveChild(nil) // must not panic
}

func TestRemoveChildByIdentityNotEquality(t *testing.T) {
	parent := NewGroup("parent")
	a := NewEntity("twin", 10, 10)
	b := NewEntity("twin", 10, 10) // equal fields, different identity
	parent.AddChild(a)

	parent.RemoveChild(b) // b is not a child; a must survive

	if parent.NumChildren() != 1 || parent.ChildAt(0) != a {
		t.Error("remove must match by identity, not field equality")
	}
}

// --- RemoveFromParent / RemoveChildren ---

func TestRemoveFromParent(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	parent.AddChild(child)
	child.RemoveFromParent()

	if parent.NumChildren() != 0 {
		t.Error("parent should have 0 children")
	}
	if child.Parent != nil {
		t.Error("child.Parent should be nil")
	}
}

func TestRemoveFromParentNoOp(t *testing.T) {
	n := NewGroup("orphan")
	n.RemoveFromParent() // should not panic
	if n.Parent != nil {
		t.Error("Parent should remain nil")
	}
}

func TestRemoveChildren(t *testing.T) {
	parent := NewGroup("parent")
	a := NewGroup("a")
	b := NewGroup("b")
	parent.AddChild(a)
	parent.AddChild(b)
	parent.RemoveChildren()

	if parent.NumChildren() != 0 {
		t.Error("parent should have 0 children")
	}
	if a.Parent != nil || b.Parent != nil {
		t.Error("detached children should have nil Parent")
	}
}

// --- Parent reference invariant ---

// For any sequence of AddChild/RemoveChild, a node's parent reference
// equals the node under which it was last added, or nil if most recently
// removed.
func TestParentReferenceTracksLastAdd(t *testing.T) {
	p1 := NewGroup("p1")
	p2 := NewGroup("p2")
	n := NewGroup("n")

	if n.Parent != nil {
		t.Fatal("never-added node should have nil Parent")
	}

	p1.AddChild(n)
	if n.Parent != p1 {
		t.Error("Parent should be p1")
	}
	p2.AddChild(n)
	if n.Parent != p2 {
		t.Error("Parent should be p2 after reparent")
	}
	p1.AddChild(n)
	if n.Parent != p1 {
		t.Error("Parent should be p1 again")
	}
	p1.RemoveChild(n)
	if n.Parent != nil {
		t.Error("Parent should be nil after removal")
	}
	if p1.NumChildren() != 0 || p2.NumChildren() != 0 {
		t.Error("no parent should retain the node")
	}
}

// --- Traversal ---

func TestUpdatePreOrderDepthFirst(t *testing.T) {
	root := NewGroup("root")
	a := NewGroup("a")
	a1 := NewGroup("a1")
	b := NewGroup("b")
	root.AddChild(a)
	a.AddChild(a1)
	root.AddChild(b)

	var order []string
	record := func(n *Node, dt float64) {
		order = append(order, n.Name)
	}
	root.OnUpdate = record
	a.OnUpdate = record
	a1.OnUpdate = record
	b.OnUpdate = record

	root.Update(0.016, Physics{})

	want := []string{"root", "a", "a1", "b"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestUpdateEmptyChildList(t *testing.T) {
	n := NewGroup("leaf")
	n.Update(0.016, Physics{}) // must tolerate no children
}

func TestUpdateParentStateBeforeChildren(t *testing.T) {
	parent := NewEntity("parent", 10, 10)
	parent.VelX = 100
	parent.Bounce = 0
	child := NewGroup("child")
	parent.AddChild(child)

	var seenX float64
	child.OnUpdate = func(n *Node, dt float64) {
		seenX = parent.X
	}

	parent.Update(1.0, Physics{Friction: 1})

	// The child must observe the parent's already-integrated position.
	if seenX != 100 {
		t.Errorf("child saw parent.X = %v, want 100", seenX)
	}
}

func TestRenderTraversalOrderAndVisibility(t *testing.T) {
	root := NewGroup("root")
	a := NewEntity("a", 10, 10)
	b := NewEntity("b", 10, 10)
	b.Visible = false
	hidden := NewEntity("hidden-child", 5, 5)
	b.AddChild(hidden)
	c := NewEntity("c", 10, 10)
	c.X = 50
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)

	s := &recordSurface{}
	root.Render(s)

	// a and c fill rects; b's subtree skipped entirely.
	assertOps(t, s.ops(), []string{"fillrect", "fillrect"})
	if s.calls[1].args[0] != 50 {
		t.Errorf("second rect x = %v, want 50", s.calls[1].args[0])
	}
}
