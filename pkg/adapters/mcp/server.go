// Package mcp exposes the step lookup to agents as a Model Context Protocol
// server, over stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// StepsURI is the resource holding the normalized flow.
const StepsURI = "wayfinder://steps"

// ReportToolName is the tool that summarizes the flow.
const ReportToolName = "flow_report"

// Server wraps a Lookuper and exposes it as an MCP Server.
type Server struct {
	engine       ports.Lookuper
	mcpServer    *server.MCPServer
	logger       *slog.Logger
	maxQuerySize int
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for rejected queries and transport events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxQuerySize bounds the step_id argument (see runner.SanitizeQuery).
func WithMaxQuerySize(n int) Option {
	return func(s *Server) {
		s.maxQuerySize = n
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Lookuper, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("wayfinder-mcp", wayfinder.Version),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is cancelled.
// baseURL is the public URL clients use to reach addr.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
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

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	lookupTool := mcp.NewTool(domain.ToolName,
		mcp.WithDescription(domain.ToolDescription),
		mcp.WithString(domain.ToolArgStepID,
			mcp.Required(),
			mcp.Description(`The unique ID of the step you want to fetch (e.g. "opening").`),
		),
	)
	s.mcpServer.AddTool(lookupTool, s.HandleLookup)

	s.mcpServer.AddTool(mcp.NewTool(ReportToolName,
		mcp.WithDescription("Summarize the configured flow: bot identity, step count and every step ID."),
	), s.HandleReport)
}

// HandleLookup answers get_step_instructions. Unknown IDs are not tool
// errors: the diagnostic text is the answer the agent needs to retry.
func (s *Server) HandleLookup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	raw, _ := args[domain.ToolArgStepID].(string)

	query, err := runner.SanitizeQuery(raw, s.maxQuerySize)
	if err != nil {
		s.logger.Warn("MCP lookup: query rejected", "error", err, "size", len(raw))
		return mcp.NewToolResultError(fmt.Sprintf("query rejected: %v", err)), nil
	}

	answer, err := s.engine.Lookup(ctx, query)
	if err != nil {
		s.logger.Error("MCP lookup failed", "query", query, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}
	return mcp.NewToolResultText(answer), nil
}

// HandleReport answers flow_report with the report as JSON.
func (s *Server) HandleReport(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.engine.Report(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(StepsURI, "Normalized Flow",
		mcp.WithResourceDescription("Bot identity and every step, rendered with the current context."),
		mcp.WithMIMEType("application/json"),
	), s.ReadSteps)
}

// ReadSteps serves the wayfinder://steps resource.
func (s *Server) ReadSteps(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	cfg, err := s.engine.Configuration(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load flow: %w", err)
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode flow: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      StepsURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
