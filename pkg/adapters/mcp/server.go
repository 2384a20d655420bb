// Package mcp exposes a Mosaic engine session as a Model Context Protocol
// server, so AI agents can edit a dashboard and navigate its history as
// tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/mosaic/internal/presentation/graph"
	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/history"
)

// Engine defines the interface required by the MCP server.
type Engine interface {
	CurrentTree() (*domain.Node, error)
	AddChild(parentID string) (*domain.Node, error)
	RemoveNode(id string) (*domain.Node, error)
	Undo() bool
	Redo() bool
	Jump(snapshotID int64) bool
	History() *history.Graph
	ExportJSON() string
	ImportJSON(encoded string) error
}

// Server wraps the Mosaic Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, version string) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("mosaic-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
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
		slog.Info("MCP Server listening (SSE)", "address", addr)
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
	// TOOL: get_tree
	s.mcpServer.AddTool(mcp.NewTool("get_tree",
		mcp.WithDescription("Get the current dashboard configuration tree in canonical JSON form."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(s.engine.ExportJSON()), nil
	})

	// TOOL: add_widget
	addTool := mcp.NewTool("add_widget",
		mcp.WithDescription("Append a new default container widget under a parent node. Missing parent is a no-op."),
		mcp.WithString("parent_id", mcp.Required(), mcp.Description("The id of the parent widget")),
	)
	s.mcpServer.AddTool(addTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		parentID, _ := args["parent_id"].(string)
		tree, err := s.engine.AddChild(parentID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("add failed: %v", err)), nil
		}
		return treeResult(tree), nil
	})

	// TOOL: remove_widget
	removeTool := mcp.NewTool("remove_widget",
		mcp.WithDescription("Remove a widget by id. Missing id is a no-op."),
		mcp.WithString("id", mcp.Required(), mcp.Description("The id of the widget to remove")),
	)
	s.mcpServer.AddTool(removeTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		id, _ := args["id"].(string)
		tree, err := s.engine.RemoveNode(id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("remove failed: %v", err)), nil
		}
		return treeResult(tree), nil
	})

	// TOOL: undo / redo
	s.mcpServer.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Move to the previous dashboard state. No-op at the history root."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		moved := s.engine.Undo()
		return mcp.NewToolResultText(fmt.Sprintf("moved=%v snapshot=s%d", moved, s.engine.History().Current().ID)), nil
	})
	s.mcpServer.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Move to the most recently created branch under the current state."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		moved := s.engine.Redo()
		return mcp.NewToolResultText(fmt.Sprintf("moved=%v snapshot=s%d", moved, s.engine.History().Current().ID)), nil
	})

	// TOOL: jump
	jumpTool := mcp.NewTool("jump",
		mcp.WithDescription("Jump directly to any snapshot ever recorded in this session."),
		mcp.WithNumber("snapshot_id", mcp.Required(), mcp.Description("Numeric snapshot id, as shown in the history view")),
	)
	s.mcpServer.AddTool(jumpTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		id, _ := args["snapshot_id"].(float64)
		if !s.engine.Jump(int64(id)) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown snapshot id %d", int64(id))), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("moved=true snapshot=s%d", int64(id))), nil
	})

	// TOOL: import_tree
	importTool := mcp.NewTool("import_tree",
		mcp.WithDescription("Load an exported dashboard document as a new edit. Rejects malformed documents without touching state."),
		mcp.WithString("document", mcp.Required(), mcp.Description("Canonical dashboard JSON document")),
	)
	s.mcpServer.AddTool(importTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		doc, _ := args["document"].(string)
		if err := s.engine.ImportJSON(doc); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("import rejected: %v", err)), nil
		}
		return mcp.NewToolResultText(s.engine.ExportJSON()), nil
	})

	// TOOL: get_history
	s.mcpServer.AddTool(mcp.NewTool("get_history",
		mcp.WithDescription("Get the branching session history as a Mermaid diagram, with the current snapshot highlighted."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g := s.engine.History()
		return mcp.NewToolResultText(graph.GenerateMermaid(g.Root(), g.Current().ID)), nil
	})
}

func treeResult(tree *domain.Node) *mcp.CallToolResult {
	jsonBytes, _ := json.Marshal(tree)
	return mcp.NewToolResultText(string(jsonBytes))
}

func (s *Server) registerResources() {
	// EXPOSE: mosaic://tree
	s.mcpServer.AddResource(mcp.NewResource("mosaic://tree", "Current Dashboard Configuration",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "mosaic://tree",
				MIMEType: "application/json",
				Text:     s.engine.ExportJSON(),
			},
		}, nil
	})
}
