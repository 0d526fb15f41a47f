// ABOUTME: Ingestion pipeline: discover, chunk, embed, index, swap
// ABOUTME: Builds a fresh index and atomically replaces the live one
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/prajwal/prajgpt/internal/chunker"
	"github.com/prajwal/prajgpt/internal/config"
	"github.com/prajwal/prajgpt/internal/index"
	"github.com/prajwal/prajgpt/internal/llm"
	"github.com/prajwal/prajgpt/internal/models"
)

// Result summarizes a completed ingestion run.
type Result struct {
	Documents int            `json:"documents"`
	Chunks    int            `json:"chunks"`
	Skipped   int            `json:"skipped"`
	Manifest  index.Manifest `json:"manifest"`
}

// Pipeline wires the chunker, the embedder, and the index builder.
type Pipeline struct {
	cfg      *config.Config
	embedder llm.Embedder
	splitter *chunker.Chunker
	logger   *log.Logger
}

// New builds a pipeline from configuration.
func New(cfg *config.Config, embedder llm.Embedder, logger *log.Logger) (*Pipeline, error) {
	splitter, err := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		cfg:      cfg,
		embedder: embedder,
		splitter: splitter,
		logger:   logger,
	}, nil
}

// Run ingests every document under sourceDir into a fresh index and
// swaps it live. Empty or unreadable documents are skipped and counted;
// an embedding failure aborts the build and leaves the old index alone.
func (p *Pipeline) Run(ctx context.Context, sourceDir string) (*Result, error) {
	paths, err := Discover(sourceDir)
	if err != nil {
		return nil, err
	}

	builder, err := index.NewBuilder(p.cfg.VectorStorePath, p.cfg.EmbeddingModel)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, path := range paths {
		if err := p.ingestFile(ctx, builder, path, result); err != nil {
			_ = builder.Abort()
			return nil, err
		}
	}

	manifest, err := builder.Commit()
	if err != nil {
		return nil, err
	}
	result.Manifest = manifest

	p.logger.Info("index build complete",
		"documents", result.Documents,
		"chunks", result.Chunks,
		"skipped", result.Skipped,
		"dimension", manifest.Dimension)

	return result, nil
}

func (p *Pipeline) ingestFile(ctx context.Context, builder *index.Builder, path string, result *Result) error {
	data, err := os.ReadFile(path)
	if err != nil {
		p.logger.Warn("skipping unreadable document", "path", path, "error", err)
		result.Skipped++
		return nil
	}

	doc := models.Document{
		DocID:   fmt.Sprintf("doc_%s", uuid.New().String()[:8]),
		Path:    path,
		Name:    filepath.Base(path),
		Content: string(data),
	}

	if doc.Empty() {
		p.logger.Warn("skipping empty document", "path", path)
		result.Skipped++
		return nil
	}

	chunks, err := p.splitter.Split(doc)
	if err != nil {
		return fmt.Errorf("chunking %s: %w", doc.Name, err)
	}

	if err := builder.AddDocument(doc); err != nil {
		return err
	}

	for _, chunk := range chunks {
		vector, err := p.embedder.Embed(ctx, chunk.Content)
		if err != nil {
			return fmt.Errorf("embedding chunk %s: %w", chunk.ChunkID, err)
		}
		if err := builder.Add(chunk, vector); err != nil {
			return err
		}
	}

	p.logger.Debug("document ingested", "path", path, "chunks", len(chunks))
	result.Documents++
	result.Chunks += len(chunks)
	return nil
}
