package catalog

import (
	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
	"github.com/transparentlyai/adkflow-sub012/pkg/schema"
)

// AgentConfig is the typed configuration of an agent node.
type AgentConfig struct {
	Model       string  `mapstructure:"model"`
	Instruction string  `mapstructure:"instruction"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTurns    int     `mapstructure:"max_turns"`
	Streaming   bool    `mapstructure:"streaming"`
}

// PromptConfig is the typed configuration of a prompt node.
type PromptConfig struct {
	Path      string   `mapstructure:"path"`
	Variables []string `mapstructure:"variables"`
}

// ToolConfig is the typed configuration of a tool node.
type ToolConfig struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Endpoint    string `mapstructure:"endpoint"`
}

// VariableConfig is the typed configuration of a variable node.
type VariableConfig struct {
	Name  string `mapstructure:"name"`
	Value string `mapstructure:"value"`
	Kind  string `mapstructure:"kind"`
}

// ProbeConfig is the typed configuration of a probe node.
type ProbeConfig struct {
	Label    string `mapstructure:"label"`
	Capture  string `mapstructure:"capture"`
	MaxItems int    `mapstructure:"max_items"`
}

// GroupConfig is the typed configuration of a group node.
type GroupConfig struct {
	Color     string `mapstructure:"color"`
	Collapsed bool   `mapstructure:"collapsed"`
}

// Builtin returns a catalog pre-populated with the standard node kinds.
func Builtin() *Catalog {
	c := New()

	c.Register(Definition{
		Kind:  graph.KindAgent,
		Label: "Agent",
		Schema: schema.Schema{
			"model":       {Type: schema.String(), Required: true},
			"instruction": {Type: schema.String(), Widget: schema.WidgetTextarea},
			"temperature": {Type: schema.Float(), Default: 1.0},
			"max_turns":   {Type: schema.Int(), Default: 10},
			"streaming":   {Type: schema.Bool(), Default: false},
		},
	})

	c.Register(Definition{
		Kind:  graph.KindPrompt,
		Label: "Prompt",
		Schema: schema.Schema{
			"path":      {Type: schema.String(), Required: true},
			"variables": {Type: schema.Slice(schema.String())},
		},
	})

	c.Register(Definition{
		Kind:  graph.KindTool,
		Label: "Tool",
		Schema: schema.Schema{
			"name":        {Type: schema.String(), Required: true},
			"description": {Type: schema.String(), Widget: schema.WidgetTextarea},
			"endpoint":    {Type: schema.String()},
		},
	})

	c.Register(Definition{
		Kind:  graph.KindVariable,
		Label: "Variable",
		Schema: schema.Schema{
			"name":  {Type: schema.String(), Required: true},
			"value": {Type: schema.String()},
			"kind":  {Type: schema.Enum("string", "number", "secret"), Default: "string"},
		},
	})

	c.Register(Definition{
		Kind:  graph.KindProbe,
		Label: "Probe",
		Schema: schema.Schema{
			"label":     {Type: schema.String()},
			"capture":   {Type: schema.Enum("input", "output", "both"), Default: "output"},
			"max_items": {Type: schema.Int(), Default: 100},
		},
	})

	c.Register(Definition{
		Kind:  graph.KindGroup,
		Label: "Group",
		Schema: schema.Schema{
			"color":     {Type: schema.String()},
			"collapsed": {Type: schema.Bool(), Default: false},
		},
	})

	return c
}
