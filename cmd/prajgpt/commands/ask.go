// ABOUTME: Ask command answers a question grounded in the ingested documents
// ABOUTME: Retrieves relevant chunks and feeds them to the generation backend
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/prajwal/prajgpt/internal/config"
	"github.com/prajwal/prajgpt/internal/llm"
	"github.com/prajwal/prajgpt/internal/rag"
)

var (
	askTopK int
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about your documents",
		Long: `Ask a question about your documents.

Retrieves the most relevant chunks from the index, builds an
augmented prompt and sends it to the generation model. The answer
is printed along with the source files it drew from.

Examples:
  prajgpt ask "how does the ingestion pipeline work?"
  prajgpt ask --top-k 8 "what are the config defaults?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().IntVar(&askTopK, "top-k", 0, "Number of chunks to retrieve (0 uses the configured default)")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	// Load .env for backend settings and API keys
	_ = godotenv.Load()

	if askTopK < 0 {
		return fmt.Errorf("top-k must not be negative, got %d", askTopK)
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
	answer, err := retriever.Ask(cmd.Context(), args[0], askTopK)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer.Answer)

	if !quiet && len(answer.Sources) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSources:\n")
		seen := map[string]bool{}
		for _, src := range answer.Sources {
			if seen[src.File] {
				continue
			}
			seen[src.File] = true
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", src.File)
		}
	}

	return nil
}
