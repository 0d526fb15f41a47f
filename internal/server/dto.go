// ABOUTME: Request and response DTOs for the HTTP API
// ABOUTME: JSON shapes mirror the Ollama-style request bodies
package server

import "github.com/prajwal/prajgpt/internal/models"

type generateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type chatRequest struct {
	Messages []models.ChatMessage `json:"messages" binding:"required"`
}

type chatResponse struct {
	Message models.ChatMessage `json:"message"`
}

type ragChatRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	TopK   int    `json:"top_k"`
}

type ragChatResponse struct {
	Answer  string               `json:"answer"`
	Sources []models.ScoredChunk `json:"sources"`
}

type searchRequest struct {
	Query string `json:"query" binding:"required"`
	TopK  int    `json:"top_k"`
}

type searchResponse struct {
	Results []models.ScoredChunk `json:"results"`
	Count   int                  `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}
