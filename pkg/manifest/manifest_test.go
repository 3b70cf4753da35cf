package manifest

import (
	"strings"
	"testing"

	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
)

func TestDecode(t *testing.T) {
	t.Run("Valid Manifest", func(t *testing.T) {
		data := []byte(`
api_version: adkflow/v1
name: support-triage
graph:
  nodes:
    - id: pipeline
      kind: group
      position: {x: 0, y: 0}
    - id: classifier
      kind: agent
      parent_id: pipeline
      position: {x: 40, y: 40}
      data:
        model: gemini-pro
  edges: []
prompts:
  - node_id: classifier
    path: prompts/classify.md
`)
		p, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if p.Name != "support-triage" || len(p.Graph.Nodes) != 2 {
			t.Errorf("decoded project = %+v", p)
		}
		if p.Graph.Nodes[1].ParentID != "pipeline" {
			t.Errorf("nesting lost: %+v", p.Graph.Nodes[1])
		}
		if len(p.Prompts) != 1 || p.Prompts[0].Path != "prompts/classify.md" {
			t.Errorf("prompt refs = %+v", p.Prompts)
		}
	})

	t.Run("Missing Version Treated As V1", func(t *testing.T) {
		p, err := Decode([]byte("name: legacy\ngraph: {nodes: [], edges: []}\n"))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if p.APIVersion != APIVersion {
			t.Errorf("api version = %q", p.APIVersion)
		}
	})

	t.Run("Unknown Version Rejected", func(t *testing.T) {
		_, err := Decode([]byte("api_version: adkflow/v99\nname: future\n"))
		if err == nil || !strings.Contains(err.Error(), "unsupported manifest version") {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("Missing Name Rejected", func(t *testing.T) {
		_, err := Decode([]byte("api_version: adkflow/v1\n"))
		if err == nil || !strings.Contains(err.Error(), "no project name") {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("Structurally Broken Graph Rejected", func(t *testing.T) {
		data := []byte(`
api_version: adkflow/v1
name: broken
graph:
  nodes:
    - id: a
      kind: agent
  edges:
    - id: e
      source: a
      target: ghost
`)
		_, err := Decode(data)
		if err == nil || !strings.Contains(err.Error(), "missing target") {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		if _, err := Decode([]byte(": : :")); err == nil {
			t.Error("expected unmarshal error")
		}
	})
}

func TestEncode_RoundTripsThroughDecode(t *testing.T) {
	p := New("demo")
	p.Graph = graph.NewBuilder().
		Add("g").Group("Stage").Done().
		Add("a").Agent("Writer").In("g").Set("model", "gemini-pro").Done().
		Connect("g", "a").
		Build()

	data, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode of encoded manifest: %v", err)
	}
	if back.Name != "demo" || len(back.Graph.Nodes) != 2 || len(back.Graph.Edges) != 1 {
		t.Errorf("round trip lost data: %+v", back)
	}
	if back.Graph.Nodes[1].Data["model"] != "gemini-pro" {
		t.Errorf("node data lost: %+v", back.Graph.Nodes[1])
	}
}
