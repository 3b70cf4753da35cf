// Package mcp exposes the editor's project store to MCP clients so
// agents can list projects and inspect or validate their graphs.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	adkflow "github.com/transparentlyai/adkflow-sub012"
	"github.com/transparentlyai/adkflow-sub012/pkg/catalog"
	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
	"github.com/transparentlyai/adkflow-sub012/pkg/manifest"
	"github.com/transparentlyai/adkflow-sub012/pkg/ports"
)

// ValidationResponse is the structured result of the validate_graph tool.
type ValidationResponse struct {
	Valid  bool          `json:"valid" jsonschema_description:"Whether the graph has no structural issues"`
	Issues []graph.Issue `json:"issues" jsonschema_description:"List of structural problems found"`
}

// Server wraps the project store and exposes it as an MCP server.
type Server struct {
	store     ports.ProjectStore
	catalog   *catalog.Catalog
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(store ports.ProjectStore) *Server {
	s := &Server{
		store:     store,
		catalog:   catalog.Builtin(),
		mcpServer: server.NewMCPServer("adkflow-mcp", strings.TrimSpace(adkflow.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_projects
	s.mcpServer.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List the IDs of all stored projects."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := s.store.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(ids)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the full canvas graph of a project."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("The project to inspect")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		project, err := s.loadProject(ctx, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		jsonBytes, _ := json.Marshal(project.Graph)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: validate_graph
	validateTool := mcp.NewTool("validate_graph",
		mcp.WithDescription("Check a project's graph for structural problems (duplicate IDs, dangling edges, broken or cyclic nesting) and invalid node configuration payloads."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("The project to validate")),
		mcp.WithOutputSchema[ValidationResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidationResponse, error) {
	projectID, _ := args["project_id"].(string)
	if projectID == "" {
		return ValidationResponse{}, fmt.Errorf("project_id is required")
	}

	project, err := s.store.Load(ctx, projectID)
	if err != nil {
		return ValidationResponse{}, fmt.Errorf("load failed: %w", err)
	}

	issues := graph.Validate(project.Graph)
	issues = append(issues, s.catalog.Issues(project.Graph)...)
	if issues == nil {
		issues = []graph.Issue{}
	}
	return ValidationResponse{
		Valid:  len(issues) == 0,
		Issues: issues,
	}, nil
}

func (s *Server) loadProject(ctx context.Context, request mcp.CallToolRequest) (*manifest.Project, error) {
	projectID := request.GetString("project_id", "")
	if projectID == "" {
		return nil, fmt.Errorf("project_id is required")
	}
	project, err := s.store.Load(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}
	return project, nil
}

func (s *Server) registerResources() {
	// EXPOSE: adkflow://projects
	s.mcpServer.AddResource(mcp.NewResource("adkflow://projects", "Stored Project IDs",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list projects: %w", err)
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "adkflow://projects",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
