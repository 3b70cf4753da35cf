package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
	"github.com/transparentlyai/adkflow-sub012/pkg/manifest"
)

// memStore is an in-memory ProjectStore for tests.
type memStore struct {
	mu       sync.Mutex
	projects map[string]*manifest.Project
}

func newMemStore() *memStore {
	return &memStore{projects: make(map[string]*manifest.Project)}
}

func (s *memStore) Save(ctx context.Context, id string, p *manifest.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[id] = p
	return nil
}

func (s *memStore) Load(ctx context.Context, id string) (*manifest.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, graph.ErrProjectNotFound
	}
	return p, nil
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
	return nil
}

func (s *memStore) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.projects))
	for id := range s.projects {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestOpenInitializesMissingProject(t *testing.T) {
	store := newMemStore()
	m := NewManager(store)

	ws, err := m.Open(context.Background(), "tab-1", "proj-1")
	require.NoError(t, err)
	require.NotNil(t, ws)
	assert.Equal(t, "proj-1", ws.ProjectID)

	// The project was persisted to reserve the ID.
	_, err = store.Load(context.Background(), "proj-1")
	assert.NoError(t, err)
}

func TestOpenIsIdempotent(t *testing.T) {
	m := NewManager(newMemStore())

	ws1, err := m.Open(context.Background(), "tab-1", "proj-1")
	require.NoError(t, err)
	ws2, err := m.Open(context.Background(), "tab-1", "proj-1")
	require.NoError(t, err)

	assert.Same(t, ws1, ws2)
}

func TestSaveClearsDirty(t *testing.T) {
	store := newMemStore()
	m := NewManager(store)
	ctx := context.Background()

	ws, err := m.Open(ctx, "tab-1", "proj-1")
	require.NoError(t, err)

	g := graph.NewBuilder()
	g.Add("a1").Agent("Researcher").Done()
	ws.SetGraph(g.Build())
	assert.True(t, ws.Dirty())

	require.NoError(t, m.Save(ctx, "tab-1"))
	assert.False(t, ws.Dirty())

	loaded, err := store.Load(ctx, "proj-1")
	require.NoError(t, err)
	assert.Len(t, loaded.Graph.Nodes, 1)
}

func TestCloseSavesDirtyAndInvalidatesClipboard(t *testing.T) {
	store := newMemStore()
	m := NewManager(store)
	ctx := context.Background()

	ws, err := m.Open(ctx, "tab-1", "proj-1")
	require.NoError(t, err)

	g := graph.NewBuilder()
	g.Add("a1").Agent("Researcher").Selected().Done()
	ws.SetGraph(g.Build())

	cb := ws.Clipboard
	require.NoError(t, m.Close(ctx, "tab-1"))

	// Unsaved changes were flushed.
	loaded, err := store.Load(ctx, "proj-1")
	require.NoError(t, err)
	assert.Len(t, loaded.Graph.Nodes, 1)

	// The workspace is gone.
	_, ok := m.Get("tab-1")
	assert.False(t, ok)

	// The clipboard outlived its scope and must refuse to work.
	assert.Panics(t, func() {
		cb.Has()
	})
}

func TestCloseUnknownWorkspaceIsNoop(t *testing.T) {
	m := NewManager(newMemStore())
	assert.NoError(t, m.Close(context.Background(), "never-opened"))
}

func TestWithLockSerializesAccess(t *testing.T) {
	m := NewManager(newMemStore())
	ctx := context.Background()

	_, err := m.Open(ctx, "tab-1", "proj-1")
	require.NoError(t, err)

	const workers = 16
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = m.WithLock(ctx, "tab-1", func(context.Context) error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestListReportsOpenWorkspaces(t *testing.T) {
	m := NewManager(newMemStore())
	ctx := context.Background()

	_, err := m.Open(ctx, "tab-1", "proj-1")
	require.NoError(t, err)
	_, err = m.Open(ctx, "tab-2", "proj-2")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"tab-1", "tab-2"}, m.List())
}

// wrappingStore decorates a store the way middleware does, wrapping
// errors with extra context on the way out.
type wrappingStore struct {
	inner *memStore
}

func (s *wrappingStore) Save(ctx context.Context, id string, p *manifest.Project) error {
	return s.inner.Save(ctx, id, p)
}

func (s *wrappingStore) Load(ctx context.Context, id string) (*manifest.Project, error) {
	p, err := s.inner.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}
	return p, nil
}

func (s *wrappingStore) Delete(ctx context.Context, id string) error {
	return s.inner.Delete(ctx, id)
}

func (s *wrappingStore) List(ctx context.Context) ([]string, error) {
	return s.inner.List(ctx)
}

func TestOpenInitializesThroughWrappedNotFound(t *testing.T) {
	inner := newMemStore()
	m := NewManager(&wrappingStore{inner: inner})

	ws, err := m.Open(context.Background(), "tab-1", "proj-1")
	require.NoError(t, err)
	require.NotNil(t, ws)

	_, err = inner.Load(context.Background(), "proj-1")
	assert.NoError(t, err)
}
