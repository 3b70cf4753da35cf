package graph

import "testing"

func TestDiff(t *testing.T) {
	base := NewBuilder().
		Add("a").Agent("Planner").Done().
		Add("b").Tool("Search").Done().
		Connect("a", "b").
		Build()

	t.Run("Initial Load", func(t *testing.T) {
		d := Diff("proj", nil, &base)
		if d == nil {
			t.Fatal("expected full diff for initial load")
		}
		if len(d.NodesAdded) != 2 || len(d.EdgesAdded) != 1 {
			t.Errorf("initial diff = %+v", d)
		}
	})

	t.Run("No Change Returns Nil", func(t *testing.T) {
		same := base.Clone()
		if d := Diff("proj", &base, &same); d != nil {
			t.Errorf("expected nil diff, got %+v", d)
		}
	})

	t.Run("Selection Change Is Not A Change", func(t *testing.T) {
		selected := base.Clone()
		selected.Nodes[0].Selected = true
		if d := Diff("proj", &base, &selected); d != nil {
			t.Errorf("transient selection must not produce a diff: %+v", d)
		}
	})

	t.Run("Node Moved", func(t *testing.T) {
		moved := base.Clone()
		moved.Nodes[0].Position.X = 99
		d := Diff("proj", &base, &moved)
		if d == nil || len(d.NodesChanged) != 1 || d.NodesChanged[0].ID != "a" {
			t.Errorf("diff = %+v", d)
		}
	})

	t.Run("Node And Edge Removed", func(t *testing.T) {
		trimmed := Graph{Nodes: []Node{base.Nodes[0].Clone()}}
		d := Diff("proj", &base, &trimmed)
		if d == nil {
			t.Fatal("expected diff")
		}
		if len(d.NodesRemoved) != 1 || d.NodesRemoved[0] != "b" {
			t.Errorf("nodes removed = %v", d.NodesRemoved)
		}
		if len(d.EdgesRemoved) != 1 {
			t.Errorf("edges removed = %v", d.EdgesRemoved)
		}
	})

	t.Run("Nil New Graph", func(t *testing.T) {
		if d := Diff("proj", &base, nil); d != nil {
			t.Errorf("expected nil, got %+v", d)
		}
	})
}
