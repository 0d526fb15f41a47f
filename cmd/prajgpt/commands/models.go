// ABOUTME: Models command lists models available on the inference backend
// ABOUTME: Queries the configured backend and prints model names
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/prajwal/prajgpt/internal/config"
	"github.com/prajwal/prajgpt/internal/llm"
)

// NewModelsCmd creates the models command
func NewModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List models available on the inference backend",
		Long: `List models available on the inference backend.

Queries the configured backend for its installed models. Useful
for checking which generation and embedding models you can set in
OLLAMA_MODEL and EMBEDDING_MODEL.`,
		RunE: runModels,
	}

	return cmd
}

func runModels(cmd *cobra.Command, args []string) error {
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

	names, err := client.ListModels(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing models: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(names, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if len(names) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No models installed on the backend")
		}
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}

	return nil
}
