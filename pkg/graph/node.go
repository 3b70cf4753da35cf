package graph

// Node kinds define what a canvas node represents.
const (
	// KindAgent is an AI agent step (model, instruction, sub-agents).
	KindAgent = "agent"
	// KindPrompt references a prompt file rendered into an agent instruction.
	KindPrompt = "prompt"
	// KindTool is a callable tool exposed to an agent.
	KindTool = "tool"
	// KindVariable injects a named value into the pipeline context.
	KindVariable = "variable"
	// KindProbe taps a wire for inspection without altering the flow.
	KindProbe = "probe"
	// KindGroup is a container node that owns children via the parent relation.
	KindGroup = "group"
)

// Position is the canvas placement of a node.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node represents a logical unit on the editor canvas.
type Node struct {
	ID   string `json:"id" yaml:"id"`
	Kind string `json:"kind" yaml:"kind"` // e.g., "agent", "prompt", "tool", "group"

	// Label is the human-readable name shown on the canvas.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// ParentID references a containing group node. Empty for top-level nodes.
	ParentID string `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`

	Position Position `json:"position" yaml:"position"`

	// Data holds the per-kind configuration payload, validated against the
	// kind's field schema (see pkg/catalog).
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`

	// Selected is transient UI state. It is never persisted in manifests
	// or clipboard payloads.
	Selected bool `json:"selected,omitempty" yaml:"-"`
}

// Clone returns a deep copy of the node. The Data map is copied one level
// deep, which covers the flat field payloads the catalog produces.
func (n Node) Clone() Node {
	c := n
	if n.Data != nil {
		c.Data = make(map[string]any, len(n.Data))
		for k, v := range n.Data {
			c.Data[k] = v
		}
	}
	return c
}
