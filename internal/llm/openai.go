// ABOUTME: OpenAI-compatible backend client built on sashabaranov/go-openai
// ABOUTME: Supports hosted OpenAI and any gateway exposing the /v1 API
package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/prajwal/prajgpt/internal/config"
	"github.com/prajwal/prajgpt/internal/models"
	"github.com/prajwal/prajgpt/internal/util"
)

// OpenAIClient adapts an OpenAI-compatible endpoint to the Client interface.
type OpenAIClient struct {
	client     *openai.Client
	chatModel  string
	embedModel openai.EmbeddingModel
	maxRetries int
	retryDelay time.Duration
}

// NewOpenAIClient builds a client from configuration. An empty base URL
// targets hosted OpenAI; otherwise any /v1-compatible gateway works.
func NewOpenAIClient(cfg *config.Config) (*OpenAIClient, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}

	return &OpenAIClient{
		client:     openai.NewClientWithConfig(clientCfg),
		chatModel:  cfg.ChatModel,
		embedModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Generate runs a one-shot completion for the prompt.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.Chat(ctx, []models.ChatMessage{{Role: models.RoleUser, Content: prompt}})
}

// GenerateStream streams completion tokens to fn as they arrive.
func (c *OpenAIClient) GenerateStream(ctx context.Context, prompt string, fn func(token string) error) error {
	stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Stream: true,
	})
	if err != nil {
		return classify(err)
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return classify(err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if token := resp.Choices[0].Delta.Content; token != "" {
			if err := fn(token); err != nil {
				return err
			}
		}
	}
}

// Chat runs a non-streaming chat completion.
func (c *OpenAIClient) Chat(ctx context.Context, messages []models.ChatMessage) (string, error) {
	converted := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		converted[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.chatModel,
		Messages: converted,
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// Embed requests an embedding, retrying with backoff like the Ollama client.
func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float64, error) {
	var vector []float64

	err := util.Do(ctx, c.maxRetries, c.retryDelay, func() error {
		resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: c.embedModel,
		})
		if err != nil {
			return classify(err)
		}
		if len(resp.Data) == 0 {
			return fmt.Errorf("no embeddings returned")
		}

		embedding32 := resp.Data[0].Embedding
		vector = make([]float64, len(embedding32))
		for i, v := range embedding32 {
			vector[i] = float64(v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("generating embedding: %w", err)
	}

	return vector, nil
}

// ListModels returns the model IDs the endpoint advertises.
func (c *OpenAIClient) ListModels(ctx context.Context) ([]string, error) {
	resp, err := c.client.ListModels(ctx)
	if err != nil {
		return nil, classify(err)
	}

	names := make([]string, len(resp.Models))
	for i, m := range resp.Models {
		names[i] = m.ID
	}
	return names, nil
}

// Health probes the endpoint with a short deadline.
func (c *OpenAIClient) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.ListModels(ctx)
	return err
}

// classify maps transport failures and gateway errors to ErrUnavailable
// so callers surface them as 503 rather than 500.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode >= http.StatusInternalServerError {
			return unavailable(err)
		}
		return err
	}
	// Anything that never produced an API response is a connectivity failure.
	return unavailable(err)
}
