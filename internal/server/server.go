// ABOUTME: HTTP API server wiring routes, middleware, and graceful shutdown
// ABOUTME: Exposes health, config, generation, chat, RAG, and search endpoints
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/prajwal/prajgpt/internal/config"
	"github.com/prajwal/prajgpt/internal/llm"
	"github.com/prajwal/prajgpt/internal/rag"
)

// Server hosts the PrajGPT HTTP API.
type Server struct {
	cfg       *config.Config
	client    llm.Client
	retriever *rag.Retriever
	logger    *log.Logger
	router    *gin.Engine
}

// NewServer assembles the API server. A nil logger falls back to the
// package default.
func NewServer(cfg *config.Config, client llm.Client, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:       cfg,
		client:    client,
		retriever: rag.New(cfg, client),
		logger:    logger,
	}
	s.buildRouter()
	return s
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) buildRouter() {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(s.logger))

	if s.cfg.CORSEnabled {
		router.Use(CORSMiddleware())
	}

	router.GET("/health", s.handleHealth)
	router.GET("/config", s.handleConfig)

	api := router.Group("/api")
	api.POST("/generate", s.handleGenerate)
	api.POST("/chat", s.handleChat)
	api.POST("/rag/chat", s.handleRAGChat)
	api.POST("/search", s.handleSearch)

	s.router = router
}

// Run serves until SIGINT/SIGTERM, then drains connections.
func (s *Server) Run() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.APIHost, s.cfg.APIPort)
	s.logger.Info("starting HTTP server", "address", fmt.Sprintf("http://%s", addr), "model", s.cfg.ChatModel)

	// No WriteTimeout: it would cut off long streamed generations.
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		s.logger.Info("shutting down", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server shutdown complete")
	return nil
}
