// ABOUTME: Root CLI command with global flags shared by all subcommands
// ABOUTME: Wires verbose/quiet/format handling and registers subcommands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prajgpt",
		Short: "Personal RAG assistant over your own documents",
		Long: `PrajGPT - a personal retrieval-augmented assistant.

Ingest your markdown and text notes into a local vector index,
then search them, ask questions grounded in them, or serve the
whole thing as an HTTP API or MCP server for LLM agents.

Configuration comes from environment variables (optionally via a
.env file) with an optional YAML config file. Run with --verbose
for detailed logging or --quiet to suppress progress output.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewModelsCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
