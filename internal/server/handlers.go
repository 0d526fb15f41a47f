// ABOUTME: HTTP handlers for health, config, generation, chat, RAG, and search
// ABOUTME: Maps backend-unreachable and index-not-ready to 503 responses
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prajwal/prajgpt/internal/index"
	"github.com/prajwal/prajgpt/internal/llm"
	"github.com/prajwal/prajgpt/internal/models"
)

func (s *Server) handleHealth(c *gin.Context) {
	backend := "ok"
	if err := s.client.Health(c.Request.Context()); err != nil {
		backend = "unreachable"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"model":   s.cfg.ChatModel,
		"backend": backend,
		"index":   s.retriever.Status(),
	})
}

// handleConfig exposes a subset of shared configuration for debugging.
func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"provider":          s.cfg.Provider,
		"ollama_host":       s.cfg.OllamaHost,
		"chat_model":        s.cfg.ChatModel,
		"embedding_model":   s.cfg.EmbeddingModel,
		"vector_store_path": s.cfg.VectorStorePath,
		"api_port":          s.cfg.APIPort,
		"chunk_size":        s.cfg.ChunkSize,
		"chunk_overlap":     s.cfg.ChunkOverlap,
		"top_k":             s.cfg.TopK,
	})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "prompt is required"})
		return
	}

	if req.Stream {
		s.streamGenerate(c, req.Prompt)
		return
	}

	response, err := s.client.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, generateResponse{Response: response})
}

// streamGenerate forwards the backend token stream as NDJSON. The
// status line is committed by the first token, so backend failures
// before that still produce a proper error response.
func (s *Server) streamGenerate(c *gin.Context, prompt string) {
	wrote := false
	enc := json.NewEncoder(c.Writer)

	err := s.client.GenerateStream(c.Request.Context(), prompt, func(token string) error {
		if !wrote {
			c.Writer.Header().Set("Content-Type", "application/x-ndjson")
			c.Writer.WriteHeader(http.StatusOK)
			wrote = true
		}
		if err := enc.Encode(gin.H{"response": token, "done": false}); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	})

	if err != nil && !wrote {
		s.writeError(c, err)
		return
	}
	if err != nil {
		s.logger.Error("stream aborted", "error", err)
		return
	}

	if !wrote {
		c.Writer.Header().Set("Content-Type", "application/x-ndjson")
		c.Writer.WriteHeader(http.StatusOK)
	}
	_ = enc.Encode(gin.H{"response": "", "done": true})
	c.Writer.Flush()
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "messages are required"})
		return
	}

	content, err := s.client.Chat(c.Request.Context(), req.Messages)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, chatResponse{
		Message: models.ChatMessage{Role: models.RoleAssistant, Content: content},
	})
}

func (s *Server) handleRAGChat(c *gin.Context) {
	var req ragChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "prompt is required"})
		return
	}

	answer, err := s.retriever.Ask(c.Request.Context(), req.Prompt, req.TopK)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ragChatResponse{Answer: answer.Answer, Sources: answer.Sources})
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "query is required"})
		return
	}

	results, err := s.retriever.Search(c.Request.Context(), req.Query, req.TopK)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, searchResponse{Results: results, Count: len(results)})
}

// writeError translates domain errors into HTTP status codes.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, llm.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "inference backend unavailable"})
	case errors.Is(err, index.ErrNotReady):
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "index not ready, run ingestion first"})
	default:
		s.logger.Error("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
