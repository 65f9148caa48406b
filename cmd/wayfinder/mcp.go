package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/pkg/adapters/mcp"
	"github.com/aretw0/wayfinder/pkg/observability"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the step lookup to AI agents as the get_step_instructions tool.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		eng, err := openEngine(ctx, wayfinder.WithHooks(observability.LogHooks(logger)))
		if err != nil {
			return err
		}
		srv := mcp.NewServer(eng,
			mcp.WithLogger(logger),
			mcp.WithMaxQuerySize(settings.Query.MaxSize),
		)

		switch transport {
		case "stdio":
			// Logs go to stderr; stdout carries JSON-RPC.
			logger.Info("starting MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			baseURL := settings.Server.BaseURL
			if baseURL == "" {
				baseURL = "http://localhost" + settings.Server.Addr
			}
			logger.Info("starting MCP server (SSE)", "addr", settings.Server.Addr)
			if err := srv.ServeSSE(ctx, settings.Server.Addr, baseURL); err != nil {
				return err
			}
			logger.Info("MCP server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport %q: supported stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
}
