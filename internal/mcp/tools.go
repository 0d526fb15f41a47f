// ABOUTME: MCP tool definitions and registration for the PrajGPT server
// ABOUTME: Defines JSON schemas for the document search, ask and status tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/prajwal/prajgpt/internal/rag"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, retriever *rag.Retriever) *Handlers {
	handlers := &Handlers{retriever: retriever}

	// 1. search_documents - semantic search over the ingested documents
	server.AddTool(mcp.Tool{
		Name:        "search_documents",
		Description: "Search the ingested document collection for passages relevant to a query. Returns the best-matching chunks with their source files and similarity scores.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchDocuments)

	// 2. ask - retrieval-augmented question answering
	server.AddTool(mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using retrieval-augmented generation over the ingested documents. Returns the answer along with the source files it was grounded on.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.Ask)

	// 3. index_status - inspect the vector index
	server.AddTool(mcp.Tool{
		Name:        "index_status",
		Description: "Report whether the vector index is ready, and its document, chunk and embedding model details.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.IndexStatus)

	return handlers
}
