// ABOUTME: Shared interfaces and errors for the embedding/generation backends
// ABOUTME: Ollama-native and OpenAI-compatible clients both satisfy Client
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/prajwal/prajgpt/internal/config"
	"github.com/prajwal/prajgpt/internal/models"
)

// ErrUnavailable marks failures caused by an unreachable backend. The
// HTTP layer maps it to 503.
var ErrUnavailable = errors.New("inference backend unavailable")

// Embedder converts text into a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Generator produces completions from the configured chat model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateStream(ctx context.Context, prompt string, fn func(token string) error) error
	Chat(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// Client is the full backend surface the service depends on.
type Client interface {
	Embedder
	Generator
	ListModels(ctx context.Context) ([]string, error)
	Health(ctx context.Context) error
}

// New selects a backend client from configuration.
func New(cfg *config.Config) (Client, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		return NewOllamaClient(cfg), nil
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
