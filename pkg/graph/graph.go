package graph

// Graph is a snapshot of an editor canvas: the full node and edge sets.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Clone returns a deep copy of the graph.
func (g Graph) Clone() Graph {
	c := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		c.Nodes[i] = n.Clone()
	}
	copy(c.Edges, g.Edges)
	return c
}

// NodeByID returns the node with the given identifier, if present.
func (g Graph) NodeByID(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// ChildIndex maps a parent node ID to the IDs of its direct children,
// in the order the children appear in the node list.
func ChildIndex(nodes []Node) map[string][]string {
	idx := make(map[string][]string)
	for _, n := range nodes {
		if n.ParentID != "" {
			idx[n.ParentID] = append(idx[n.ParentID], n.ID)
		}
	}
	return idx
}

// Descendants computes the downward closure of the given root IDs under
// the parent relation: the roots themselves plus every node whose
// ancestor chain reaches a root. The walk keeps a visited set so a
// malformed (cyclic) parent chain terminates instead of looping.
func Descendants(nodes []Node, roots []string) map[string]bool {
	children := ChildIndex(nodes)

	included := make(map[string]bool, len(roots))
	queue := make([]string, 0, len(roots))
	for _, id := range roots {
		if !included[id] {
			included[id] = true
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, child := range children[current] {
			if included[child] {
				continue
			}
			included[child] = true
			queue = append(queue, child)
		}
	}

	return included
}
