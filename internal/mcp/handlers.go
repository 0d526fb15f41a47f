// ABOUTME: MCP tool handler implementations for the PrajGPT server
// ABOUTME: Contains handler implementations with proper error handling for all 3 tools
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prajwal/prajgpt/internal/index"
	"github.com/prajwal/prajgpt/internal/llm"
	"github.com/prajwal/prajgpt/internal/rag"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	retriever *rag.Retriever
}

// SearchDocuments handles the search_documents tool
func (h *Handlers) SearchDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", 5)

	results, err := h.retriever.Search(ctx, query, maxResults)
	if err != nil {
		return toolError("search failed", err), nil
	}

	type searchHit struct {
		File    string  `json:"file"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	}
	hits := make([]searchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, searchHit{File: r.File, Content: r.Content, Score: r.SimilarityScore})
	}

	response := map[string]interface{}{
		"query":   query,
		"count":   len(hits),
		"results": hits,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// Ask handles the ask tool
func (h *Handlers) Ask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	answer, err := h.retriever.Ask(ctx, question, 0)
	if err != nil {
		return toolError("ask failed", err), nil
	}

	response := map[string]interface{}{
		"answer":  answer.Answer,
		"sources": answer.Sources,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// IndexStatus handles the index_status tool
func (h *Handlers) IndexStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := h.retriever.Status()

	response := map[string]interface{}{
		"ready":  status.Ready,
		"chunks": status.Chunks,
	}
	if status.Ready {
		response["documents"] = status.Manifest.Documents
		response["embedding_model"] = status.Manifest.EmbeddingModel
		response["dimension"] = status.Manifest.Dimension
		response["built_at"] = status.Manifest.BuiltAt
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// toolError maps well-known failures to actionable messages for the agent.
func toolError(prefix string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, index.ErrNotReady):
		return mcp.NewToolResultError("index not ready, run ingestion first")
	case errors.Is(err, llm.ErrUnavailable):
		return mcp.NewToolResultError("inference backend unavailable")
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", prefix, err))
}
