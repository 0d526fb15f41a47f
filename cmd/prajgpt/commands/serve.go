// ABOUTME: Serve command starts the HTTP API server
// ABOUTME: Exposes health, generation, chat and retrieval endpoints
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/prajwal/prajgpt/internal/config"
	"github.com/prajwal/prajgpt/internal/llm"
	"github.com/prajwal/prajgpt/internal/server"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Serves the generation, chat and retrieval endpoints over JSON.
The server keeps running until interrupted and shuts down
gracefully on SIGINT/SIGTERM.`,
		RunE: runServe,
		Example: `  # Serve on the configured host/port (default :8000)
  prajgpt serve

  # Serve on a different port
  API_PORT=9090 prajgpt serve`,
	}

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env for backend settings and API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := llm.New(cfg)
	if err != nil {
		return fmt.Errorf("initializing backend client: %w", err)
	}

	logger := newLogger()
	srv := server.NewServer(cfg, client, logger)

	return srv.Run()
}
