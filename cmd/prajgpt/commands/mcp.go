// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to query the document index via stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/prajwal/prajgpt/internal/config"
	"github.com/prajwal/prajgpt/internal/llm"
	"github.com/prajwal/prajgpt/internal/mcp"
	"github.com/prajwal/prajgpt/internal/rag"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs PrajGPT as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to search and question your documents via
stdio.

Configure in Claude Desktop's config file to enable the tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  prajgpt mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "prajgpt": {
  #       "command": "prajgpt",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	// Load .env for backend settings and API keys
	if err := godotenv.Load(); err != nil && verbose {
		logger.Debug("no .env file found", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := llm.New(cfg)
	if err != nil {
		return fmt.Errorf("initializing backend client: %w", err)
	}

	retriever := rag.New(cfg, client)
	if !retriever.Status().Ready {
		logger.Warn("vector index not found, search tools will report not ready until ingestion runs", "path", cfg.VectorStorePath)
	}

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"PrajGPT",
		versionInfo.Version,
	)

	// Register MCP tools
	mcp.RegisterTools(server, retriever)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		logger.Info("MCP server starting on stdio")
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		if !quiet {
			logger.Info("shutdown signal received")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
