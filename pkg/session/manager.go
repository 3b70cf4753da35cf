// Package session manages editor workspaces: one workspace per open
// tab/document, each owning the live graph and its clipboard.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/transparentlyai/adkflow-sub012/internal/logging"
	"github.com/transparentlyai/adkflow-sub012/pkg/clipboard"
	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
	"github.com/transparentlyai/adkflow-sub012/pkg/manifest"
	"github.com/transparentlyai/adkflow-sub012/pkg/ports"
)

// Workspace is an open editor tab: a project checked out for editing.
// Mutation goes through Manager.WithLock; the clipboard carries its own
// internal synchronization.
type Workspace struct {
	ID        string
	ProjectID string
	Project   *manifest.Project

	// Clipboard is scoped to this workspace's lifetime. Using it after
	// Close panics (see pkg/clipboard).
	Clipboard *clipboard.Manager

	scope *clipboard.Scope
	dirty bool
}

// Graph returns the workspace's live graph.
func (w *Workspace) Graph() graph.Graph {
	return w.Project.Graph
}

// SetGraph replaces the live graph and marks the workspace dirty.
// Call under Manager.WithLock.
func (w *Workspace) SetGraph(g graph.Graph) {
	w.Project.Graph = g
	w.dirty = true
}

// Dirty reports whether the workspace has unsaved changes.
func (w *Workspace) Dirty() bool {
	return w.dirty
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates workspace access, ensuring safe concurrent
// operations. It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.ProjectStore

	mu         sync.Mutex
	locks      map[string]*lockEntry
	workspaces map[string]*Workspace

	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a workspace manager backed by the given project store.
func NewManager(store ports.ProjectStore, opts ...Option) *Manager {
	m := &Manager{
		store:      store,
		locks:      make(map[string]*lockEntry),
		workspaces: make(map[string]*Workspace),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST lock entry.mu, and then call release(workspaceID) after
// unlocking.
func (m *Manager) acquire(workspaceID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[workspaceID]
	if !exists {
		entry = &lockEntry{}
		m.locks[workspaceID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry when it
// reaches zero.
func (m *Manager) release(workspaceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[workspaceID]
	if !exists {
		return // should not happen if paired correctly
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, workspaceID)
	}
}

// WithLock executes a function while holding the lock for the workspace.
func (m *Manager) WithLock(ctx context.Context, workspaceID string, fn func(context.Context) error) error {
	entry := m.acquire(workspaceID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(workspaceID)
	}()

	return fn(ctx)
}

// Open checks a project out into a workspace. If the project does not
// exist in the store, a fresh one is initialized and persisted to
// reserve the ID. Opening an already-open workspace returns it.
func (m *Manager) Open(ctx context.Context, workspaceID, projectID string) (*Workspace, error) {
	var ws *Workspace
	err := m.WithLock(ctx, workspaceID, func(ctx context.Context) error {
		m.mu.Lock()
		existing, ok := m.workspaces[workspaceID]
		m.mu.Unlock()
		if ok {
			ws = existing
			return nil
		}

		project, err := m.store.Load(ctx, projectID)
		if errors.Is(err, graph.ErrProjectNotFound) {
			project = manifest.New(projectID)
			if err := m.store.Save(ctx, projectID, project); err != nil {
				return fmt.Errorf("failed to initialize project: %w", err)
			}
			m.logger.Info("Initialized new project", "project_id", projectID)
		} else if err != nil {
			return fmt.Errorf("failed to load project: %w", err)
		}

		scope := clipboard.OpenScope()
		ws = &Workspace{
			ID:        workspaceID,
			ProjectID: projectID,
			Project:   project,
			Clipboard: clipboard.New(scope),
			scope:     scope,
		}

		m.mu.Lock()
		m.workspaces[workspaceID] = ws
		m.mu.Unlock()
		return nil
	})
	return ws, err
}

// Get returns an open workspace.
func (m *Manager) Get(workspaceID string) (*Workspace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws, ok := m.workspaces[workspaceID]
	return ws, ok
}

// Save persists the workspace's project and clears the dirty flag.
func (m *Manager) Save(ctx context.Context, workspaceID string) error {
	return m.WithLock(ctx, workspaceID, func(ctx context.Context) error {
		ws, ok := m.Get(workspaceID)
		if !ok {
			return fmt.Errorf("workspace not open: %s", workspaceID)
		}
		if err := m.store.Save(ctx, ws.ProjectID, ws.Project); err != nil {
			return err
		}
		ws.dirty = false
		return nil
	})
}

// Close ends a workspace. Unsaved changes are persisted first; the
// clipboard scope is invalidated so stale handles fail loudly.
func (m *Manager) Close(ctx context.Context, workspaceID string) error {
	return m.WithLock(ctx, workspaceID, func(ctx context.Context) error {
		ws, ok := m.Get(workspaceID)
		if !ok {
			return nil // already closed
		}

		if ws.dirty {
			if err := m.store.Save(ctx, ws.ProjectID, ws.Project); err != nil {
				return fmt.Errorf("failed to save workspace on close: %w", err)
			}
		}

		ws.scope.Close()

		m.mu.Lock()
		delete(m.workspaces, workspaceID)
		m.mu.Unlock()

		m.logger.Info("Workspace closed", "workspace_id", workspaceID)
		return nil
	})
}

// List returns the IDs of open workspaces.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.workspaces))
	for id := range m.workspaces {
		ids = append(ids, id)
	}
	return ids
}

// Store returns the underlying project store.
func (m *Manager) Store() ports.ProjectStore {
	return m.store
}
