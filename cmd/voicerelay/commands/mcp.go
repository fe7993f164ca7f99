// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to use voicerelay routing and vector stores via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/voicerelay/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs voicerelay as an MCP (Model Context Protocol) server, exposing the
supervisor and vector stores as tools over stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  voicerelay mcp

  # Configure in an MCP client config:
  # {
  #   "mcpServers": {
  #     "voicerelay": {
  #       "command": "voicerelay",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	st, err := buildStack()
	if err != nil {
		return err
	}
	defer st.Close()

	server := mcpserver.NewMCPServer(
		"voicerelay",
		versionInfo.Version,
	)

	mcp.RegisterTools(server, st.supervisor, st.stores)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("voicerelay MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}
	return nil
}
