// Package http exposes the editor service over REST: project CRUD,
// validation, per-workspace clipboard operations, graph export, a
// prompt change stream and Prometheus metrics.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/transparentlyai/adkflow-sub012/internal/logging"
	"github.com/transparentlyai/adkflow-sub012/internal/loglang"
	"github.com/transparentlyai/adkflow-sub012/internal/observability"
	mermaid "github.com/transparentlyai/adkflow-sub012/internal/presentation/graph"
	"github.com/transparentlyai/adkflow-sub012/internal/tracetree"
	"github.com/transparentlyai/adkflow-sub012/pkg/catalog"
	"github.com/transparentlyai/adkflow-sub012/pkg/clipboard"
	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
	"github.com/transparentlyai/adkflow-sub012/pkg/manifest"
	"github.com/transparentlyai/adkflow-sub012/pkg/ports"
	"github.com/transparentlyai/adkflow-sub012/pkg/session"
)

// Server wires the editor core to HTTP handlers.
type Server struct {
	Sessions *session.Manager
	Prompts  ports.PromptStore
	Catalog  *catalog.Catalog
	Metrics  *observability.Collector
	Logger   *slog.Logger
}

// Options configures the handler.
type Options struct {
	Sessions   *session.Manager
	Prompts    ports.PromptStore // optional
	Catalog    *catalog.Catalog  // defaults to the builtin kinds
	Metrics    *observability.Collector
	Logger     *slog.Logger
	EnableCORS bool
}

// NewHandler builds the HTTP handler for the editor API.
func NewHandler(opts Options) http.Handler {
	s := &Server{
		Sessions: opts.Sessions,
		Prompts:  opts.Prompts,
		Catalog:  opts.Catalog,
		Metrics:  opts.Metrics,
		Logger:   opts.Logger,
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}
	if s.Metrics == nil {
		s.Metrics = observability.NewCollector("adkflow")
	}
	if s.Catalog == nil {
		s.Catalog = catalog.Builtin()
	}

	r := chi.NewRouter()

	r.Route("/projects", func(r chi.Router) {
		r.With(s.Metrics.Middleware("/projects")).Get("/", s.ListProjects)
		r.Route("/{projectID}", func(r chi.Router) {
			r.Use(s.Metrics.Middleware("/projects/{projectID}"))
			r.Get("/", s.GetProject)
			r.Put("/", s.PutProject)
			r.Delete("/", s.DeleteProject)
			r.Post("/validate", s.ValidateProject)
			r.Get("/mermaid", s.ExportMermaid)
		})
	})

	r.Route("/workspaces/{workspaceID}", func(r chi.Router) {
		r.Use(s.Metrics.Middleware("/workspaces/{workspaceID}"))
		r.Post("/open", s.OpenWorkspace)
		r.Post("/close", s.CloseWorkspace)
		r.Get("/graph", s.GetWorkspaceGraph)
		r.Put("/graph", s.PutWorkspaceGraph)
		r.Post("/save", s.SaveWorkspace)
		r.Post("/clipboard/copy", s.CopySelection)
		r.Post("/clipboard/paste", s.PasteClipboard)
		r.Get("/clipboard", s.GetClipboard)
		r.Delete("/clipboard", s.ClearClipboard)
	})

	r.With(s.Metrics.Middleware("/kinds")).Get("/kinds", s.ListKinds)

	r.Route("/probe", func(r chi.Router) {
		r.Use(s.Metrics.Middleware("/probe"))
		r.Post("/logs", s.TokenizeLogs)
		r.Post("/trace", s.AssembleTrace)
	})

	if s.Prompts != nil {
		r.Get("/prompts", s.ListPrompts)
		r.Get("/prompts/{promptID}", s.GetPrompt)
		r.Get("/events", s.SubscribePromptEvents)
	}

	// Swagger UI
	r.Get("/openapi.yaml", serveOpenAPI)
	r.Get("/swagger", serveSwagger)

	r.Handle("/metrics", s.Metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if opts.EnableCORS {
		return enableCORS(r)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// -- Projects --

// ListProjects handles GET /projects.
func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.Store().List(r.Context())
	if err != nil {
		s.fail(w, "List error", err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": ids})
}

// GetProject handles GET /projects/{projectID}.
func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	project, err := s.Sessions.Store().Load(r.Context(), id)
	if errors.Is(err, graph.ErrProjectNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.fail(w, "Load error", err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// PutProject handles PUT /projects/{projectID}.
func (s *Server) PutProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	var project manifest.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	issues := graph.Validate(project.Graph)
	issues = append(issues, s.Catalog.Issues(project.Graph)...)
	if len(issues) > 0 {
		s.Metrics.ValidationIssues.Add(float64(len(issues)))
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"issues": issues})
		return
	}
	if err := s.Sessions.Store().Save(r.Context(), id, &project); err != nil {
		s.Metrics.ProjectSaves.WithLabelValues("error").Inc()
		s.fail(w, "Save error", err, http.StatusInternalServerError)
		return
	}
	s.Metrics.ProjectSaves.WithLabelValues("ok").Inc()
	w.WriteHeader(http.StatusNoContent)
}

// DeleteProject handles DELETE /projects/{projectID}.
func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Store().Delete(r.Context(), chi.URLParam(r, "projectID")); err != nil {
		s.fail(w, "Delete error", err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ValidateProject handles POST /projects/{projectID}/validate.
func (s *Server) ValidateProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.Sessions.Store().Load(r.Context(), chi.URLParam(r, "projectID"))
	if errors.Is(err, graph.ErrProjectNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.fail(w, "Load error", err, http.StatusInternalServerError)
		return
	}
	issues := graph.Validate(project.Graph)
	issues = append(issues, s.Catalog.Issues(project.Graph)...)
	s.Metrics.ValidationIssues.Add(float64(len(issues)))
	writeJSON(w, http.StatusOK, map[string]any{"valid": len(issues) == 0, "issues": issues})
}

// ListKinds handles GET /kinds: the node-kind catalog with field schemas
// and widget hints, so the canvas can build its palette and config forms.
func (s *Server) ListKinds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"kinds": s.Catalog.Describe()})
}

// ExportMermaid handles GET /projects/{projectID}/mermaid.
func (s *Server) ExportMermaid(w http.ResponseWriter, r *http.Request) {
	project, err := s.Sessions.Store().Load(r.Context(), chi.URLParam(r, "projectID"))
	if errors.Is(err, graph.ErrProjectNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.fail(w, "Load error", err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, mermaid.GenerateMermaid(project.Graph, nil))
}

// -- Workspaces --

type openRequest struct {
	ProjectID string `json:"project_id"`
}

// OpenWorkspace handles POST /workspaces/{workspaceID}/open.
func (s *Server) OpenWorkspace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workspaceID")
	var body openRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProjectID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	ws, err := s.Sessions.Open(r.Context(), id, body.ProjectID)
	if err != nil {
		s.fail(w, "Open error", err, http.StatusInternalServerError)
		return
	}
	s.Metrics.WorkspacesOpen.Set(float64(len(s.Sessions.List())))
	writeJSON(w, http.StatusOK, map[string]any{
		"workspace_id": ws.ID,
		"project_id":   ws.ProjectID,
		"graph":        ws.Graph(),
	})
}

// CloseWorkspace handles POST /workspaces/{workspaceID}/close.
func (s *Server) CloseWorkspace(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Close(r.Context(), chi.URLParam(r, "workspaceID")); err != nil {
		s.fail(w, "Close error", err, http.StatusInternalServerError)
		return
	}
	s.Metrics.WorkspacesOpen.Set(float64(len(s.Sessions.List())))
	w.WriteHeader(http.StatusNoContent)
}

// GetWorkspaceGraph handles GET /workspaces/{workspaceID}/graph.
func (s *Server) GetWorkspaceGraph(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.Sessions.Get(chi.URLParam(r, "workspaceID"))
	if !ok {
		http.Error(w, "Workspace not open", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ws.Graph())
}

// PutWorkspaceGraph handles PUT /workspaces/{workspaceID}/graph. The
// response carries the diff against the previous snapshot so clients
// can apply a partial update instead of re-rendering the whole canvas.
func (s *Server) PutWorkspaceGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workspaceID")
	var g graph.Graph
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	var diff *graph.GraphDiff
	err := s.Sessions.WithLock(r.Context(), id, func(context.Context) error {
		ws, ok := s.Sessions.Get(id)
		if !ok {
			return errWorkspaceNotOpen
		}
		prev := ws.Graph()
		diff = graph.Diff(ws.ProjectID, &prev, &g)
		if diff != nil {
			ws.SetGraph(g)
		}
		return nil
	})
	if errors.Is(err, errWorkspaceNotOpen) {
		http.Error(w, "Workspace not open", http.StatusNotFound)
		return
	}
	if err != nil {
		s.fail(w, "Update error", err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"changed": diff != nil, "diff": diff})
}

// SaveWorkspace handles POST /workspaces/{workspaceID}/save.
func (s *Server) SaveWorkspace(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Save(r.Context(), chi.URLParam(r, "workspaceID")); err != nil {
		s.Metrics.ProjectSaves.WithLabelValues("error").Inc()
		s.fail(w, "Save error", err, http.StatusInternalServerError)
		return
	}
	s.Metrics.ProjectSaves.WithLabelValues("ok").Inc()
	w.WriteHeader(http.StatusNoContent)
}

// -- Clipboard --

type copyRequest struct {
	// Optional. When present, replaces the current selection before
	// copying.
	Selected []string `json:"selected,omitempty"`
}

// CopySelection handles POST /workspaces/{workspaceID}/clipboard/copy.
func (s *Server) CopySelection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workspaceID")
	var body copyRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	var captured bool
	err := s.Sessions.WithLock(r.Context(), id, func(context.Context) error {
		ws, ok := s.Sessions.Get(id)
		if !ok {
			return errWorkspaceNotOpen
		}
		g := ws.Graph()
		if body.Selected != nil {
			selectNodes(&g, body.Selected)
			ws.SetGraph(g)
		}
		ws.Clipboard.Copy(g.Nodes, g.Edges, ws.ProjectID)
		captured = ws.Clipboard.Has()
		return nil
	})
	if errors.Is(err, errWorkspaceNotOpen) {
		http.Error(w, "Workspace not open", http.StatusNotFound)
		return
	}
	if err != nil {
		s.fail(w, "Copy error", err, http.StatusInternalServerError)
		return
	}
	if captured {
		s.Metrics.ClipboardCopies.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]any{"captured": captured})
}

type pasteRequest struct {
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// PasteClipboard handles POST /workspaces/{workspaceID}/clipboard/paste.
// Materialized nodes and edges are appended to the live graph and
// returned to the caller.
func (s *Server) PasteClipboard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workspaceID")
	var body pasteRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	var nodes []graph.Node
	var edges []graph.Edge
	err := s.Sessions.WithLock(r.Context(), id, func(context.Context) error {
		ws, ok := s.Sessions.Get(id)
		if !ok {
			return errWorkspaceNotOpen
		}
		payload, ok := ws.Clipboard.Payload()
		if !ok {
			return nil // empty clipboard pastes nothing
		}
		nodes, edges = clipboard.Materialize(payload, graph.Position{X: body.OffsetX, Y: body.OffsetY})

		g := ws.Graph()
		selectNodes(&g, nil) // pasted content becomes the new selection
		g.Nodes = append(g.Nodes, nodes...)
		g.Edges = append(g.Edges, edges...)
		ws.SetGraph(g)
		return nil
	})
	if errors.Is(err, errWorkspaceNotOpen) {
		http.Error(w, "Workspace not open", http.StatusNotFound)
		return
	}
	if err != nil {
		s.fail(w, "Paste error", err, http.StatusInternalServerError)
		return
	}
	if len(nodes) > 0 {
		s.Metrics.ClipboardPastes.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]any{"nodes": nodes, "edges": edges})
}

// GetClipboard handles GET /workspaces/{workspaceID}/clipboard.
func (s *Server) GetClipboard(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.Sessions.Get(chi.URLParam(r, "workspaceID"))
	if !ok {
		http.Error(w, "Workspace not open", http.StatusNotFound)
		return
	}
	payload, has := ws.Clipboard.Payload()
	if !has {
		writeJSON(w, http.StatusOK, map[string]any{"has": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"has":     true,
		"nodes":   payload.Nodes,
		"edges":   payload.Edges,
		"context": payload.ContextID,
	})
}

// ClearClipboard handles DELETE /workspaces/{workspaceID}/clipboard.
func (s *Server) ClearClipboard(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.Sessions.Get(chi.URLParam(r, "workspaceID"))
	if !ok {
		http.Error(w, "Workspace not open", http.StatusNotFound)
		return
	}
	ws.Clipboard.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// -- Probes --

// TokenizeLogs handles POST /probe/logs. The body is raw agent run
// output; each line comes back as a token list for the log explorer.
func (s *Server) TokenizeLogs(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	tokens := make([][]loglang.Token, len(lines))
	for i, line := range lines {
		tokens[i] = loglang.Tokenize(line)
	}
	writeJSON(w, http.StatusOK, map[string]any{"lines": tokens})
}

// AssembleTrace handles POST /probe/trace. The body is a flat span
// list; the response is the assembled tree for the trace explorer.
func (s *Server) AssembleTrace(w http.ResponseWriter, r *http.Request) {
	var spans []tracetree.Span
	if err := json.NewDecoder(r.Body).Decode(&spans); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	roots := tracetree.Assemble(spans)
	if roots == nil {
		roots = []*tracetree.Node{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"roots": roots})
}

// -- Prompts --

// ListPrompts handles GET /prompts.
func (s *Server) ListPrompts(w http.ResponseWriter, r *http.Request) {
	prompts, err := s.Prompts.List(r.Context())
	if err != nil {
		s.fail(w, "List error", err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"prompts": prompts})
}

// GetPrompt handles GET /prompts/{promptID}.
func (s *Server) GetPrompt(w http.ResponseWriter, r *http.Request) {
	prompt, err := s.Prompts.Get(r.Context(), chi.URLParam(r, "promptID"))
	if errors.Is(err, graph.ErrPromptNotFound) {
		http.Error(w, "Prompt not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.fail(w, "Get error", err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, prompt)
}

// SubscribePromptEvents handles GET /events (SSE). Each event carries
// the ID of a prompt that changed on disk.
func (s *Server) SubscribePromptEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	watchable, ok := s.Prompts.(ports.Watchable)
	if !ok {
		http.Error(w, "Prompt store does not support watching", http.StatusNotImplemented)
		return
	}

	events, err := watchable.Watch(r.Context())
	if err != nil {
		s.fail(w, "Watch error", err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case id, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: prompt\ndata: %s\n\n", id)
			flusher.Flush()
		}
	}
}

// -- Helpers --

var errWorkspaceNotOpen = errors.New("workspace not open")

// selectNodes replaces the Selected flags on the graph. A nil list
// clears the selection.
func selectNodes(g *graph.Graph, ids []string) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for i := range g.Nodes {
		g.Nodes[i].Selected = want[g.Nodes[i].ID]
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode error", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, msg string, err error, status int) {
	s.Logger.Error(msg, "error", err)
	http.Error(w, fmt.Sprintf("%s: %v", msg, err), status)
}
