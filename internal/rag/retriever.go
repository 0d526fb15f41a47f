// ABOUTME: Retrieval side of the RAG flow: embed query, search, build context
// ABOUTME: Opens the index per call so an atomic swap is picked up immediately
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/prajwal/prajgpt/internal/config"
	"github.com/prajwal/prajgpt/internal/index"
	"github.com/prajwal/prajgpt/internal/llm"
	"github.com/prajwal/prajgpt/internal/models"
)

// Answer is a generated response plus the chunks that grounded it.
type Answer struct {
	Answer  string               `json:"answer"`
	Sources []models.ScoredChunk `json:"sources"`
}

// Status reports index readiness for health checks and tooling.
type Status struct {
	Ready    bool           `json:"ready"`
	Chunks   int            `json:"chunks"`
	Manifest index.Manifest `json:"manifest,omitempty"`
}

// Retriever performs similarity search and context assembly over the
// persisted index.
type Retriever struct {
	cfg    *config.Config
	client llm.Client
}

// New builds a retriever on top of a backend client.
func New(cfg *config.Config, client llm.Client) *Retriever {
	return &Retriever{cfg: cfg, client: client}
}

// Search embeds the query and returns the top-k chunks.
// A missing index surfaces index.ErrNotReady.
func (r *Retriever) Search(ctx context.Context, query string, k int) ([]models.ScoredChunk, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query must not be empty")
	}
	if k <= 0 {
		k = r.cfg.TopK
	}

	store, err := index.Open(r.cfg.VectorStorePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	vector, err := r.client.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	return store.SearchSimilar(vector, k)
}

// ContextFor builds a bounded context block from the best matches. It
// stops adding chunks once the next one would exceed maxLen characters.
func (r *Retriever) ContextFor(ctx context.Context, query string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = r.cfg.MaxContextLength
	}

	results, err := r.Search(ctx, query, r.cfg.TopK)
	if err != nil {
		return "", err
	}

	var parts []string
	length := 0
	for _, result := range results {
		part := fmt.Sprintf("From %s:\n%s\n", result.File, result.Content)
		if length+len(part) > maxLen {
			break
		}
		parts = append(parts, part)
		length += len(part)
	}

	return strings.Join(parts, "\n---\n"), nil
}

// Ask retrieves context for the question, augments the prompt, and
// generates an answer with the chunks that informed it.
func (r *Retriever) Ask(ctx context.Context, question string, k int) (*Answer, error) {
	if k <= 0 {
		k = r.cfg.TopK
	}

	sources, err := r.Search(ctx, question, k)
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(question, sources, r.cfg.MaxContextLength)

	answer, err := r.client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &Answer{Answer: answer, Sources: sources}, nil
}

// Status opens the index and summarizes it; a not-ready index is a
// valid status, not an error.
func (r *Retriever) Status() Status {
	store, err := index.Open(r.cfg.VectorStorePath)
	if err != nil {
		return Status{Ready: false}
	}
	defer func() { _ = store.Close() }()

	count, err := store.Count()
	if err != nil {
		return Status{Ready: false}
	}
	return Status{Ready: true, Chunks: count, Manifest: store.Manifest()}
}

// buildPrompt assembles the augmented generation prompt. Without any
// usable context it falls back to the bare question.
func buildPrompt(question string, sources []models.ScoredChunk, maxContextLen int) string {
	var parts []string
	length := 0
	for _, source := range sources {
		part := fmt.Sprintf("From %s:\n%s\n", source.File, source.Content)
		if length+len(part) > maxContextLen {
			break
		}
		parts = append(parts, part)
		length += len(part)
	}

	if len(parts) == 0 {
		return question
	}

	return fmt.Sprintf(
		"Use the following context to answer the question. If the context is not relevant, say so.\n\nContext:\n%s\n\nQuestion: %s",
		strings.Join(parts, "\n---\n"), question)
}
