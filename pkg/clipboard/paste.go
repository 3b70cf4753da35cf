package clipboard

import (
	"github.com/google/uuid"

	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
)

// Materialize clones a payload into fresh nodes and edges ready to be
// inserted into the canvas. Every identifier is replaced with a new
// UUID; parent references and edge endpoints are remapped consistently.
// A parent reference pointing outside the payload is detached, so the
// pasted subtree lands at the top level. Positions are shifted by the
// given offset to keep the paste visually distinct from the source.
func Materialize(p *Payload, offset graph.Position) ([]graph.Node, []graph.Edge) {
	if p == nil {
		return nil, nil
	}

	remap := make(map[string]string, len(p.Nodes))
	for _, n := range p.Nodes {
		remap[n.ID] = uuid.NewString()
	}

	nodes := make([]graph.Node, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		c := n.Clone()
		c.ID = remap[n.ID]
		if mapped, ok := remap[n.ParentID]; ok {
			c.ParentID = mapped
		} else {
			c.ParentID = ""
		}
		c.Position.X += offset.X
		c.Position.Y += offset.Y
		c.Selected = true // pasted content becomes the new selection
		nodes = append(nodes, c)
	}

	edges := make([]graph.Edge, 0, len(p.Edges))
	for _, e := range p.Edges {
		// Payload invariant: both endpoints are always present.
		c := e
		c.ID = uuid.NewString()
		c.Source = remap[e.Source]
		c.Target = remap[e.Target]
		edges = append(edges, c)
	}

	return nodes, edges
}
