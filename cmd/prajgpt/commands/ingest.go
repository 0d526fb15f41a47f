// ABOUTME: Ingest command builds the vector index from a document directory
// ABOUTME: Discovers, chunks and embeds documents, then swaps the index atomically
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/prajwal/prajgpt/internal/config"
	"github.com/prajwal/prajgpt/internal/ingest"
	"github.com/prajwal/prajgpt/internal/llm"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <directory>",
		Short: "Ingest documents into the vector index",
		Long: `Ingest documents into the vector index.

Walks the directory for markdown and text files, splits them into
overlapping chunks, embeds each chunk via the configured backend
and writes a fresh index. The live index is replaced atomically
once the new one is complete, so searches keep working while
ingestion runs.`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
		Example: `  # Ingest your notes directory
  prajgpt ingest ~/notes

  # Re-ingest after editing documents
  prajgpt ingest ./docs`,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
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

	pipeline, err := ingest.New(cfg, client, newLogger())
	if err != nil {
		return fmt.Errorf("initializing pipeline: %w", err)
	}

	result, err := pipeline.Run(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ingesting %s: %w", args[0], err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d document(s) into %d chunk(s)\n", result.Documents, result.Chunks)
		if result.Skipped > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d file(s)\n", result.Skipped)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Index written to %s\n", cfg.VectorStorePath)
	}

	return nil
}
