package graph

import "fmt"

// Builder provides a fluent API for constructing graphs in code.
// It is used by tests and by project seeding; manifests remain the
// canonical persisted form.
type Builder struct {
	order []string
	nodes map[string]*NodeBuilder
	edges []Edge
}

// NewBuilder creates a new graph builder.
func NewBuilder() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the graph.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node:    Node{ID: id, Kind: KindAgent},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Connect adds an edge between two nodes. The edge ID is derived from the
// endpoints unless set explicitly via ConnectAs.
func (b *Builder) Connect(source, target string) *Builder {
	return b.ConnectAs(fmt.Sprintf("%s->%s", source, target), source, target)
}

// ConnectAs adds an edge with an explicit identifier.
func (b *Builder) ConnectAs(id, source, target string) *Builder {
	b.edges = append(b.edges, Edge{ID: id, Source: source, Target: target})
	return b
}

// Build compiles the builder into a Graph, preserving insertion order.
func (b *Builder) Build() Graph {
	g := Graph{
		Nodes: make([]Node, 0, len(b.order)),
		Edges: append([]Edge(nil), b.edges...),
	}
	for _, id := range b.order {
		g.Nodes = append(g.Nodes, b.nodes[id].node)
	}
	return g
}

// NodeBuilder configures a single node.
type NodeBuilder struct {
	node    Node
	builder *Builder
}

// Agent marks the node as an agent step with the given label.
func (n *NodeBuilder) Agent(label string) *NodeBuilder {
	n.node.Kind = KindAgent
	n.node.Label = label
	return n
}

// Prompt marks the node as a prompt reference.
func (n *NodeBuilder) Prompt(label string) *NodeBuilder {
	n.node.Kind = KindPrompt
	n.node.Label = label
	return n
}

// Tool marks the node as a tool.
func (n *NodeBuilder) Tool(label string) *NodeBuilder {
	n.node.Kind = KindTool
	n.node.Label = label
	return n
}

// Variable marks the node as a variable.
func (n *NodeBuilder) Variable(label string) *NodeBuilder {
	n.node.Kind = KindVariable
	n.node.Label = label
	return n
}

// Probe marks the node as a probe.
func (n *NodeBuilder) Probe(label string) *NodeBuilder {
	n.node.Kind = KindProbe
	n.node.Label = label
	return n
}

// Group marks the node as a group container.
func (n *NodeBuilder) Group(label string) *NodeBuilder {
	n.node.Kind = KindGroup
	n.node.Label = label
	return n
}

// In nests the node inside the given group.
func (n *NodeBuilder) In(parentID string) *NodeBuilder {
	n.node.ParentID = parentID
	return n
}

// At sets the canvas position.
func (n *NodeBuilder) At(x, y float64) *NodeBuilder {
	n.node.Position = Position{X: x, Y: y}
	return n
}

// Set adds a configuration field to the node's data payload.
func (n *NodeBuilder) Set(key string, value any) *NodeBuilder {
	if n.node.Data == nil {
		n.node.Data = make(map[string]any)
	}
	n.node.Data[key] = value
	return n
}

// Selected marks the node as selected (transient UI state, useful in tests).
func (n *NodeBuilder) Selected() *NodeBuilder {
	n.node.Selected = true
	return n
}

// Done returns to the parent builder for chaining.
func (n *NodeBuilder) Done() *Builder {
	return n.builder
}
