package adkflow

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/transparentlyai/adkflow-sub012/internal/adapters/file"
	loamAdapter "github.com/transparentlyai/adkflow-sub012/internal/adapters/loam"
	"github.com/transparentlyai/adkflow-sub012/internal/logging"
	mermaid "github.com/transparentlyai/adkflow-sub012/internal/presentation/graph"
	"github.com/transparentlyai/adkflow-sub012/pkg/catalog"
	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
	"github.com/transparentlyai/adkflow-sub012/pkg/manifest"
	"github.com/transparentlyai/adkflow-sub012/pkg/ports"
	"github.com/transparentlyai/adkflow-sub012/pkg/session"
	"github.com/transparentlyai/adkflow-sub012/pkg/storemw"
)

// Version is the library version reported by the CLI and MCP server.
var Version = "0.1.0"

// Editor is the high-level entry point for the adkflow library. It
// wires a project store, an optional prompt store and the workspace
// manager behind a simplified API.
type Editor struct {
	store      ports.ProjectStore
	prompts    ports.PromptStore
	sessions   *session.Manager
	catalog    *catalog.Catalog
	middleware []storemw.Middleware
	logger     *slog.Logger
	Name       string
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithStore injects a custom ProjectStore, bypassing the default
// filesystem store.
func WithStore(s ports.ProjectStore) Option {
	return func(e *Editor) {
		e.store = s
	}
}

// WithPromptStore injects a prompt store. Without one, prompt
// operations are unavailable.
func WithPromptStore(p ports.PromptStore) Option {
	return func(e *Editor) {
		e.prompts = p
	}
}

// WithCatalog replaces the builtin node-kind catalog, e.g. to register
// custom kinds.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Editor) {
		e.catalog = c
	}
}

// WithStoreMiddleware wraps the project store, outermost first.
func WithStoreMiddleware(mw ...storemw.Middleware) Option {
	return func(e *Editor) {
		e.middleware = append(e.middleware, mw...)
	}
}

// WithEncryption encrypts manifests at rest with the given 32-byte key.
func WithEncryption(cfg storemw.EncryptionConfig) Option {
	return WithStoreMiddleware(storemw.NewEncryptionMiddleware(cfg))
}

// WithLogger sets a structured logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// New initializes an Editor. By default projects live under dir and
// prompts under dir/prompts; both can be replaced via options. When a
// custom store is injected, dir only labels the editor.
func New(dir string, opts ...Option) (*Editor, error) {
	ed := &Editor{}

	for _, opt := range opts {
		opt(ed)
	}

	if ed.logger == nil {
		ed.logger = logging.NewNop()
	}

	if ed.store == nil && dir == "" {
		return nil, fmt.Errorf("dir is required when no custom store is provided")
	}

	if dir != "" {
		absPath, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		ed.Name = filepath.Base(absPath)

		if ed.store == nil {
			ed.store = file.New(filepath.Join(absPath, "projects"))
		}
		if ed.prompts == nil {
			prompts, err := loamAdapter.Open(filepath.Join(absPath, "prompts"))
			if err != nil {
				return nil, fmt.Errorf("failed to open prompt store: %w", err)
			}
			ed.prompts = prompts
		}
	}

	ed.store = storemw.Chain(ed.store, ed.middleware...)
	ed.sessions = session.NewManager(ed.store, session.WithLogger(ed.logger))
	if ed.catalog == nil {
		ed.catalog = catalog.Builtin()
	}

	return ed, nil
}

// Sessions returns the workspace manager.
func (e *Editor) Sessions() *session.Manager {
	return e.sessions
}

// Store returns the (possibly wrapped) project store.
func (e *Editor) Store() ports.ProjectStore {
	return e.store
}

// Prompts returns the prompt store, or nil if none is configured.
func (e *Editor) Prompts() ports.PromptStore {
	return e.prompts
}

// Catalog returns the node-kind catalog.
func (e *Editor) Catalog() *catalog.Catalog {
	return e.catalog
}

// Validate loads a project and reports its issues: structural problems
// from graph.Validate plus per-kind payload failures from the catalog.
func (e *Editor) Validate(ctx context.Context, projectID string) ([]graph.Issue, error) {
	project, err := e.store.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	issues := graph.Validate(project.Graph)
	return append(issues, e.catalog.Issues(project.Graph)...), nil
}

// ExportMermaid loads a project and renders its graph as Mermaid.
func (e *Editor) ExportMermaid(ctx context.Context, projectID string) (string, error) {
	project, err := e.store.Load(ctx, projectID)
	if err != nil {
		return "", err
	}
	return mermaid.GenerateMermaid(project.Graph, nil), nil
}

// Project loads a stored project by ID.
func (e *Editor) Project(ctx context.Context, projectID string) (*manifest.Project, error) {
	return e.store.Load(ctx, projectID)
}
