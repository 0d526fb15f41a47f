// ABOUTME: CLI command to search the ingested documents
// ABOUTME: Embeds the query and prints the best-matching chunks
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/prajwal/prajgpt/internal/config"
	"github.com/prajwal/prajgpt/internal/llm"
	"github.com/prajwal/prajgpt/internal/rag"
)

var (
	searchLimit int
)

// NewSearchCmd creates search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the ingested documents",
		Long: `Search the ingested documents using vector similarity.

Embeds the query with the configured embedding model and returns
the closest chunks from the index.

Examples:
  prajgpt search "sqlite pragmas"
  prajgpt search --limit 10 "index layout"
  prajgpt search --format json "error handling"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for backend settings and API keys
	_ = godotenv.Load()

	// Validate limit flag
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	query := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := llm.New(cfg)
	if err != nil {
		return fmt.Errorf("initializing backend client: %w", err)
	}

	retriever := rag.New(cfg, client)
	results, err := retriever.Search(cmd.Context(), query, searchLimit)
	if err != nil {
		return fmt.Errorf("searching documents: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No documents found for query: %s\n", query)
		}
		return nil
	}

	// Format output
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else {
		// Table format
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "SCORE\tFILE\tCHUNK\tPREVIEW\n")
		fmt.Fprintf(w, "-----\t----\t-----\t-------\n")

		for _, result := range results {
			fmt.Fprintf(w, "%.3f\t%s\t%d\t%s\n",
				result.SimilarityScore,
				truncate(result.File, 25),
				result.Seq,
				truncate(result.Content, 60))
		}
		w.Flush()

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
		}
	}

	return nil
}
