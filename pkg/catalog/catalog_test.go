package catalog

import (
	"strings"
	"testing"

	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
)

func TestBuiltin_CoversAllKinds(t *testing.T) {
	c := Builtin()
	for _, kind := range []string{
		graph.KindAgent, graph.KindPrompt, graph.KindTool,
		graph.KindVariable, graph.KindProbe, graph.KindGroup,
	} {
		if _, ok := c.Lookup(kind); !ok {
			t.Errorf("builtin catalog missing kind %q", kind)
		}
	}
}

func TestValidateNode(t *testing.T) {
	c := Builtin()

	tests := []struct {
		name    string
		node    graph.Node
		wantErr string
	}{
		{
			name: "Valid Agent",
			node: graph.Node{ID: "a", Kind: graph.KindAgent, Data: map[string]any{
				"model": "gemini-pro",
			}},
		},
		{
			name:    "Agent Missing Model",
			node:    graph.Node{ID: "a", Kind: graph.KindAgent, Data: map[string]any{}},
			wantErr: "required",
		},
		{
			name:    "Unknown Kind",
			node:    graph.Node{ID: "a", Kind: "gizmo"},
			wantErr: "kind not in catalog",
		},
		{
			name: "Variable Enum Checked",
			node: graph.Node{ID: "v", Kind: graph.KindVariable, Data: map[string]any{
				"name": "api_key",
				"kind": "mystery",
			}},
			wantErr: "is not one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.ValidateNode(tt.node)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeConfig_AppliesDefaults(t *testing.T) {
	c := Builtin()
	node := graph.Node{ID: "a", Kind: graph.KindAgent, Data: map[string]any{
		"model":     "gemini-pro",
		"max_turns": float64(5), // JSON numbers arrive as float64
	}}

	var cfg AgentConfig
	if err := c.DecodeConfig(node, &cfg); err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Model != "gemini-pro" {
		t.Errorf("model = %q", cfg.Model)
	}
	if cfg.MaxTurns != 5 {
		t.Errorf("max_turns = %d, want 5", cfg.MaxTurns)
	}
	if cfg.Temperature != 1.0 {
		t.Errorf("temperature default not applied: %v", cfg.Temperature)
	}
}

func TestValidateGraph_CollectsAllFailures(t *testing.T) {
	c := Builtin()
	g := graph.Graph{Nodes: []graph.Node{
		{ID: "a", Kind: graph.KindAgent},                                   // missing model
		{ID: "t", Kind: graph.KindTool},                                    // missing name
		{ID: "ok", Kind: graph.KindGroup, Data: map[string]any{}},          // fine
		{ID: "v", Kind: graph.KindVariable, Data: map[string]any{"name": "x"}}, // fine
	}}

	err := c.ValidateGraph(g)
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{`node "a"`, `node "t"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %v missing %q", err, want)
		}
	}
}

func TestIssues_ReportsPerNode(t *testing.T) {
	c := Builtin()
	g := graph.Graph{Nodes: []graph.Node{
		{ID: "ok", Kind: graph.KindAgent, Data: map[string]any{"model": "gemini-pro"}},
		{ID: "bad", Kind: graph.KindAgent},
		{ID: "mystery", Kind: "gizmo"}, // structural validation owns unknown kinds
	}}

	issues := c.Issues(g)
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d: %v", len(issues), issues)
	}
	if issues[0].Code != "invalid_payload" {
		t.Errorf("expected code invalid_payload, got %q", issues[0].Code)
	}
	if issues[0].Subject != "bad" {
		t.Errorf("expected subject bad, got %q", issues[0].Subject)
	}
	if !strings.Contains(issues[0].Message, "model") {
		t.Errorf("expected message to name the missing field, got %q", issues[0].Message)
	}
}

func TestDescribe_SortedWithWidgets(t *testing.T) {
	c := Builtin()
	descs := c.Describe()
	if len(descs) != 6 {
		t.Fatalf("expected 6 kinds, got %d", len(descs))
	}
	for i := 1; i < len(descs); i++ {
		if descs[i-1].Kind >= descs[i].Kind {
			t.Fatalf("descriptions not sorted: %q before %q", descs[i-1].Kind, descs[i].Kind)
		}
	}

	var agent Description
	for _, d := range descs {
		if d.Kind == graph.KindAgent {
			agent = d
		}
	}
	if agent.Label != "Agent" {
		t.Errorf("expected label Agent, got %q", agent.Label)
	}
	model := agent.Fields["model"]
	if model["required"] != true {
		t.Errorf("expected model to be required, got %v", model["required"])
	}
	if agent.Fields["streaming"]["widget"] != "checkbox" {
		t.Errorf("expected checkbox widget for streaming, got %v", agent.Fields["streaming"]["widget"])
	}
}
