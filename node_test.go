package arbor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// --- Constructor defaults ---

func TestNewNodeDefaults(t *testing.T) {
	type handle struct{ id int }
	ref := &handle{id: 7}
	n := NewNode(ref)

	if n.Reference() != ref {
		t.Errorf("Reference = %v, want %v", n.Reference(), ref)
	}
	if n.Parent() != nil {
		t.Error("Parent should be nil")
	}
	if n.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", n.NumChildren())
	}
	if n.Transform() == nil {
		t.Fatal("Transform should not be nil")
	}
	assertMatrix(t, "Local", n.Transform().Local(0), mgl32.Ident4())
	if n.Bounds() != (Box{}) {
		t.Errorf("Bounds = %v, want empty", n.Bounds())
	}
	if n.Material().Shader() != 0 || n.Material().NumTextures() != 0 {
		t.Error("Material should be zero")
	}
}

func TestBoundsAccessors(t *testing.T) {
	n := NewNode(nil)
	n.SetMin(-1, -2, -3)
	n.SetMax(4, 5, 6)
	if n.Min() != (mgl32.Vec3{-1, -2, -3}) {
		t.Errorf("Min = %v", n.Min())
	}
	if n.Max() != (mgl32.Vec3{4, 5, 6}) {
		t.Errorf("Max = %v", n.Max())
	}
	want := Box{Min: mgl32.Vec3{-1, -2, -3}, Max: mgl32.Vec3{4, 5, 6}}
	if n.Bounds() != want {
		t.Errorf("Bounds = %v, want %v", n.Bounds(), want)
	}
}

func TestMaterialIsOwnedByNode(t *testing.T) {
	n := NewNode(nil)
	n.Material().SetShader(4)
	n.Material().SetTextures(2, 1)
	if n.Material().Shader() != 4 {
		t.Errorf("Shader = %d, want 4", n.Material().Shader())
	}
}

// --- SetParent ---

func TestSetParentLinksNodeAndTransform(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	child.SetParent(parent)

	if child.Parent() != parent {
		t.Error("child.Parent should be parent")
	}
	if child.Transform().Parent() != parent.Transform() {
		t.Error("child transform parent should be parent's transform")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Errorf("parent children = %v, want [child]", parent.Children())
	}
}

func TestSetParentReparents(t *testing.T) {
	p1 := NewNode("p1")
	p2 := NewNode("p2")
	child := NewNode("child")

	child.SetParent(p1)
	child.SetParent(p2)

	if p1.NumChildren() != 0 {
		t.Errorf("p1 NumChildren = %d, want 0", p1.NumChildren())
	}
	if p2.NumChildren() != 1 {
		t.Errorf("p2 NumChildren = %d, want 1", p2.NumChildren())
	}
	if child.Transform().Parent() != p2.Transform() {
		t.Error("transform parent should follow the node to p2")
	}
}

func TestSetParentNilDetaches(t *testing.T) {
	parent := NewNode("parent")
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	a.SetParent(parent)
	b.SetParent(parent)
	c.SetParent(parent)

	b.SetParent(nil)

	if parent.NumChildren() != 2 {
		t.Fatalf("NumChildren = %d, want 2", parent.NumChildren())
	}
	if parent.ChildAt(0) != a || parent.ChildAt(1) != c {
		t.Error("remaining children should keep their order")
	}
	if b.Parent() != nil {
		t.Error("b.Parent should be nil")
	}
	if b.Transform().Parent() != nil {
		t.Error("b transform parent should be nil")
	}
}

func TestSetParentSameParentDoesNotDuplicate(t *testing.T) {
	parent := NewNode("parent")
	a := NewNode("a")
	b := NewNode("b")
	a.SetParent(parent)
	b.SetParent(parent)

	a.SetParent(parent)

	if parent.NumChildren() != 2 {
		t.Fatalf("NumChildren = %d, want 2", parent.NumChildren())
	}
	if parent.ChildAt(0) != b || parent.ChildAt(1) != a {
		t.Error("reattached child should move to the end")
	}
}

func TestRemoveFromParentKeepsChildren(t *testing.T) {
	root := NewNode("root")
	mid := NewNode("mid")
	leaf := NewNode("leaf")
	mid.SetParent(root)
	leaf.SetParent(mid)

	mid.RemoveFromParent()

	if root.NumChildren() != 0 {
		t.Error("root should have no children")
	}
	if leaf.Parent() != mid || mid.NumChildren() != 1 {
		t.Error("detaching mid should not detach its children")
	}
	if leaf.Transform().Parent() != mid.Transform() {
		t.Error("leaf transform should still follow mid")
	}

	// No-op without a parent.
	mid.RemoveFromParent()
}

func TestTransformSharedWithHost(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	held := child.Transform()
	child.SetParent(parent)

	held.SetCurrentTranslation(1, 2, 3)
	if child.Transform().CurrentTranslation() != (mgl32.Vec3{1, 2, 3}) {
		t.Error("host-held transform should be the node's transform")
	}
	if held.Parent() != parent.Transform() {
		t.Error("host-held transform should observe reparenting")
	}
}

// --- ForEach ---

func TestForEachPreOrder(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	a1 := NewNode("a1")
	b := NewNode("b")
	a.SetParent(root)
	a1.SetParent(a)
	b.SetParent(root)

	var got []any
	root.ForEach(func(n *Node) { got = append(got, n.Reference()) })
	want := []any{"root", "a", "a1", "b"}
	if len(got) != len(want) {
		t.Fatalf("ForEach visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ForEach[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFind(t *testing.T) {
	root := NewNode("root")
	root.Name = "root"
	a := NewNode("a")
	a.Name = "arm"
	a.SetParent(root)
	b := NewNode("b")
	b.Name = "hand"
	b.SetParent(a)
	c := NewNode("c")
	c.Name = "hand"
	c.SetParent(root)

	if root.Find("root") != root {
		t.Error("Find should match the starting node")
	}
	if root.Find("hand") != b {
		t.Error("Find should return the first match in pre-order")
	}
	if a.Find("hand") != b {
		t.Error("Find from arm should find its own hand")
	}
	if root.Find("leg") != nil {
		t.Error("Find should return nil when nothing matches")
	}
}
