// ABOUTME: Native Ollama API client for generation, chat, and embeddings
// ABOUTME: Talks to /api/generate, /api/chat, /api/embeddings, /api/tags
package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prajwal/prajgpt/internal/config"
	"github.com/prajwal/prajgpt/internal/models"
	"github.com/prajwal/prajgpt/internal/util"
)

// OllamaClient is a thin client for a local Ollama runtime.
type OllamaClient struct {
	baseURL    string
	chatModel  string
	embedModel string
	client     *http.Client
	maxRetries int
	retryDelay time.Duration
}

// NewOllamaClient builds a client from configuration.
func NewOllamaClient(cfg *config.Config) *OllamaClient {
	return &OllamaClient{
		baseURL:    strings.TrimSuffix(cfg.OllamaHost, "/"),
		chatModel:  cfg.ChatModel,
		embedModel: cfg.EmbeddingModel,
		client:     &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type ollamaChatRequest struct {
	Model    string               `json:"model"`
	Messages []models.ChatMessage `json:"messages"`
	Stream   bool                 `json:"stream"`
}

type ollamaChatResponse struct {
	Message models.ChatMessage `json:"message"`
}

type ollamaEmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbeddingResponse struct {
	Embedding []float64 `json:"embedding"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Generate runs a one-shot completion for the prompt.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	var out ollamaGenerateResponse
	err := c.post(ctx, "/api/generate", ollamaGenerateRequest{
		Model:  c.chatModel,
		Prompt: prompt,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Response, nil
}

// GenerateStream streams completion tokens to fn as they arrive.
// Ollama streams newline-delimited JSON objects until done is true.
func (c *OllamaClient) GenerateStream(ctx context.Context, prompt string, fn func(token string) error) error {
	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  c.chatModel,
		Prompt: prompt,
		Stream: true,
	})
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return unavailable(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var chunk ollamaGenerateResponse
		if err := json.Unmarshal(line, &chunk); err != nil {
			return fmt.Errorf("decoding stream chunk: %w", err)
		}
		if chunk.Response != "" {
			if err := fn(chunk.Response); err != nil {
				return err
			}
		}
		if chunk.Done {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stream: %w", err)
	}
	return nil
}

// Chat runs a non-streaming chat completion.
func (c *OllamaClient) Chat(ctx context.Context, messages []models.ChatMessage) (string, error) {
	var out ollamaChatResponse
	err := c.post(ctx, "/api/chat", ollamaChatRequest{
		Model:    c.chatModel,
		Messages: messages,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Message.Content, nil
}

// Embed requests an embedding from the configured embedding model.
// Embedding calls retry on failure; generation does not.
func (c *OllamaClient) Embed(ctx context.Context, text string) ([]float64, error) {
	var out ollamaEmbeddingResponse

	err := util.Do(ctx, c.maxRetries, c.retryDelay, func() error {
		out = ollamaEmbeddingResponse{}
		return c.post(ctx, "/api/embeddings", ollamaEmbeddingRequest{
			Model:  c.embedModel,
			Prompt: text,
		}, &out)
	})
	if err != nil {
		return nil, err
	}

	if len(out.Embedding) == 0 {
		return nil, fmt.Errorf("no embedding returned for text of length %d", len(text))
	}
	return out.Embedding, nil
}

// ListModels returns the names of models available on the runtime.
func (c *OllamaClient) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, unavailable(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decoding tags response: %w", err)
	}

	names := make([]string, len(tags.Models))
	for i, m := range tags.Models {
		names[i] = m.Name
	}
	return names, nil
}

// Health probes the runtime with a short deadline.
func (c *OllamaClient) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.ListModels(ctx)
	return err
}

func (c *OllamaClient) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return unavailable(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

func (c *OllamaClient) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusBadGateway {
		return unavailable(fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}
	return fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
