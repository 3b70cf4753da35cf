package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
	"github.com/transparentlyai/adkflow-sub012/pkg/manifest"
)

// RunProjectStoreContract runs a suite of tests to verify that a
// ProjectStore implementation adheres to the defined interface contract.
func RunProjectStoreContract(t *testing.T, store ProjectStore) {
	ctx := context.Background()
	projectID := "contract-test-project-" + time.Now().Format("20060102150405")

	sample := func(name string) *manifest.Project {
		p := manifest.New(name)
		p.Graph = graph.NewBuilder().
			Add("g").Group("Stage").Done().
			Add("a").Agent("Writer").In("g").Set("model", "gemini-pro").Done().
			Connect("g", "a").
			Build()
		return p
	}

	t.Run("Save and Load", func(t *testing.T) {
		project := sample("contract")

		err := store.Save(ctx, projectID, project)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, projectID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, project.Name, loaded.Name)
		assert.Len(t, loaded.Graph.Nodes, 2)
		assert.Len(t, loaded.Graph.Edges, 1)
		assert.Equal(t, "g", loaded.Graph.Nodes[1].ParentID, "nesting must survive persistence")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+projectID)
		assert.ErrorIs(t, err, graph.ErrProjectNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, projectID, sample("first")))
		require.NoError(t, store.Save(ctx, projectID, sample("second")))

		loaded, err := store.Load(ctx, projectID)
		require.NoError(t, err)
		assert.Equal(t, "second", loaded.Name)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, projectID, sample("doomed")))

		err := store.Delete(ctx, projectID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, projectID)
		assert.ErrorIs(t, err, graph.ErrProjectNotFound, "Load after Delete should return ErrProjectNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := projectID + "-1"
		id2 := projectID + "-2"
		require.NoError(t, store.Save(ctx, id1, sample("one")))
		require.NoError(t, store.Save(ctx, id2, sample("two")))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		projects, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, projects, id1)
		assert.Contains(t, projects, id2)
	})
}
