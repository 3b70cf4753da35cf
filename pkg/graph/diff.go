package graph

import "reflect"

// GraphDiff represents the changes between two canvas snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type GraphDiff struct {
	// ProjectID is always present to identify the target.
	ProjectID string `json:"project_id"`

	// NodesAdded and NodesChanged carry full node payloads; NodesRemoved
	// carries only identifiers. Clients merge these into their local state.
	NodesAdded   []Node   `json:"nodes_added,omitempty"`
	NodesChanged []Node   `json:"nodes_changed,omitempty"`
	NodesRemoved []string `json:"nodes_removed,omitempty"`

	EdgesAdded   []Edge   `json:"edges_added,omitempty"`
	EdgesRemoved []string `json:"edges_removed,omitempty"`
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *GraphDiff) IsEmpty() bool {
	return len(d.NodesAdded) == 0 &&
		len(d.NodesChanged) == 0 &&
		len(d.NodesRemoved) == 0 &&
		len(d.EdgesAdded) == 0 &&
		len(d.EdgesRemoved) == 0
}

// Diff calculates the difference between two graph snapshots.
// If old is nil, it returns a diff representing the entire new graph
// (initial load). A nil result means nothing changed.
func Diff(projectID string, old, new *Graph) *GraphDiff {
	if new == nil {
		return nil
	}

	diff := &GraphDiff{ProjectID: projectID}

	var oldNodes map[string]Node
	var oldEdges map[string]Edge
	if old != nil {
		oldNodes = make(map[string]Node, len(old.Nodes))
		for _, n := range old.Nodes {
			oldNodes[n.ID] = n
		}
		oldEdges = make(map[string]Edge, len(old.Edges))
		for _, e := range old.Edges {
			oldEdges[e.ID] = e
		}
	}

	newNodeIDs := make(map[string]bool, len(new.Nodes))
	for _, n := range new.Nodes {
		newNodeIDs[n.ID] = true
		prev, existed := oldNodes[n.ID]
		switch {
		case !existed:
			diff.NodesAdded = append(diff.NodesAdded, n)
		case !nodesEqual(prev, n):
			diff.NodesChanged = append(diff.NodesChanged, n)
		}
	}
	for id := range oldNodes {
		if !newNodeIDs[id] {
			diff.NodesRemoved = append(diff.NodesRemoved, id)
		}
	}

	newEdgeIDs := make(map[string]bool, len(new.Edges))
	for _, e := range new.Edges {
		newEdgeIDs[e.ID] = true
		if _, existed := oldEdges[e.ID]; !existed {
			diff.EdgesAdded = append(diff.EdgesAdded, e)
		}
	}
	for id := range oldEdges {
		if !newEdgeIDs[id] {
			diff.EdgesRemoved = append(diff.EdgesRemoved, id)
		}
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// nodesEqual compares nodes ignoring the transient selection flag.
func nodesEqual(a, b Node) bool {
	a.Selected = false
	b.Selected = false
	return reflect.DeepEqual(a, b)
}
