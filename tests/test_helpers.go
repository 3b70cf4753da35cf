package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	adkflow "github.com/transparentlyai/adkflow-sub012"
	"github.com/transparentlyai/adkflow-sub012/pkg/clipboard"
	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
	"github.com/transparentlyai/adkflow-sub012/pkg/manifest"
)

// newEditor builds an Editor over a throwaway directory: file-backed
// projects plus a markdown prompt library.
func newEditor(t *testing.T, opts ...adkflow.Option) *adkflow.Editor {
	t.Helper()
	ed, err := adkflow.New(t.TempDir(), opts...)
	require.NoError(t, err)
	return ed
}

// pipelineGraph is the canonical fixture: a research group with two
// nested members, plus a free-standing writer wired to the group's
// agent.
func pipelineGraph() graph.Graph {
	b := graph.NewBuilder()
	b.Add("research").Group("Research").Done()
	b.Add("researcher").Agent("Researcher").In("research").At(20, 40).
		Set("model", "gemini-2.5-pro").Done()
	b.Add("search").Tool("web_search").In("research").At(20, 160).
		Set("name", "web_search").Done()
	b.Add("writer").Agent("Writer").At(400, 100).
		Set("model", "gemini-2.5-flash").Done()
	b.Connect("search", "researcher").
		Connect("researcher", "writer")
	return b.Build()
}

// materialize pastes a payload at a fixed offset with fresh IDs.
func materialize(t *testing.T, p *clipboard.Payload) ([]graph.Node, []graph.Edge) {
	t.Helper()
	return clipboard.Materialize(p, graph.Position{X: 40, Y: 40})
}

func saveProject(t *testing.T, ed *adkflow.Editor, id string, g graph.Graph) {
	t.Helper()
	p := manifest.New(id)
	p.Graph = g
	require.NoError(t, ed.Store().Save(context.Background(), id, p))
}
