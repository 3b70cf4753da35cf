package graph

// Edge connects two nodes on the canvas.
type Edge struct {
	ID     string `json:"id" yaml:"id"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`

	// Handle identifiers distinguish ports on multi-port nodes.
	SourceHandle string `json:"source_handle,omitempty" yaml:"source_handle,omitempty"`
	TargetHandle string `json:"target_handle,omitempty" yaml:"target_handle,omitempty"`

	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}
