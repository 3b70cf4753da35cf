package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adkflow "github.com/transparentlyai/adkflow-sub012"
	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
	"github.com/transparentlyai/adkflow-sub012/pkg/ports"
	"github.com/transparentlyai/adkflow-sub012/pkg/storemw"
)

func TestProjectRoundTripOnDisk(t *testing.T) {
	ed := newEditor(t)
	saveProject(t, ed, "pipeline", pipelineGraph())

	loaded, err := ed.Project(context.Background(), "pipeline")
	require.NoError(t, err)
	assert.Len(t, loaded.Graph.Nodes, 4)
	assert.Len(t, loaded.Graph.Edges, 2)

	ids, err := ed.Store().List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"pipeline"}, ids)
}

func TestCopyPasteAcrossWorkspaces(t *testing.T) {
	ed := newEditor(t)
	saveProject(t, ed, "pipeline", pipelineGraph())
	ctx := context.Background()

	src, err := ed.Sessions().Open(ctx, "tab-src", "pipeline")
	require.NoError(t, err)
	dst, err := ed.Sessions().Open(ctx, "tab-dst", "scratch")
	require.NoError(t, err)

	// Select the group in the source tab; the capture closes over its
	// children and the edge between them.
	g := src.Graph()
	for i := range g.Nodes {
		g.Nodes[i].Selected = g.Nodes[i].ID == "research"
	}
	src.Clipboard.Copy(g.Nodes, g.Edges, src.ProjectID)

	payload, ok := src.Clipboard.Payload()
	require.True(t, ok)
	require.Len(t, payload.Nodes, 3)
	require.Len(t, payload.Edges, 1)

	// Materialize into the destination tab's empty graph.
	nodes, edges := materialize(t, payload)
	dg := dst.Graph()
	dg.Nodes = append(dg.Nodes, nodes...)
	dg.Edges = append(dg.Edges, edges...)
	dst.SetGraph(dg)

	require.NoError(t, ed.Sessions().Save(ctx, "tab-dst"))

	reloaded, err := ed.Project(ctx, "scratch")
	require.NoError(t, err)
	assert.Len(t, reloaded.Graph.Nodes, 3)
	assert.Len(t, reloaded.Graph.Edges, 1)
	assert.Empty(t, graph.Validate(reloaded.Graph))

	// The pasted copies keep their payloads, so the full validation
	// (structure plus per-kind config) stays clean too.
	issues, err := ed.Validate(ctx, "scratch")
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEncryptedProjectsUnreadableWithoutKey(t *testing.T) {
	dir := t.TempDir()
	key := storemw.EncryptionConfig{ActiveKey: []byte("0123456789abcdef0123456789abcdef")}

	ed, err := adkflow.New(dir, adkflow.WithEncryption(key))
	require.NoError(t, err)
	saveProject(t, ed, "secret", pipelineGraph())

	// Same directory, no key: only the opaque envelope is visible.
	plain, err := adkflow.New(dir)
	require.NoError(t, err)
	envelope, err := plain.Project(context.Background(), "secret")
	require.NoError(t, err)
	assert.Empty(t, envelope.Graph.Nodes)
	assert.NotEmpty(t, envelope.Meta)

	// Same directory, same key: transparent round trip.
	again, err := adkflow.New(dir, adkflow.WithEncryption(key))
	require.NoError(t, err)
	loaded, err := again.Project(context.Background(), "secret")
	require.NoError(t, err)
	assert.Len(t, loaded.Graph.Nodes, 4)
}

func TestPromptLibraryRoundTrip(t *testing.T) {
	ed := newEditor(t)
	require.NotNil(t, ed.Prompts())
	ctx := context.Background()

	err := ed.Prompts().Save(ctx, &ports.Prompt{
		ID:      "system",
		Title:   "System Prompt",
		Content: "# Role\n\nYou are a research assistant.",
	})
	require.NoError(t, err)

	p, err := ed.Prompts().Get(ctx, "system")
	require.NoError(t, err)
	assert.Equal(t, "System Prompt", p.Title)
	assert.Contains(t, p.Content, "research assistant")

	ids, err := ed.Prompts().List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "system")
}

func TestMissingPromptFailsWithTypedError(t *testing.T) {
	ed := newEditor(t)
	_, err := ed.Prompts().Get(context.Background(), "never-written")
	require.ErrorIs(t, err, graph.ErrPromptNotFound)
}
