// ABOUTME: Write side of the vector index with atomic-swap commit
// ABOUTME: Builds into temp files, then renames over the live index
package index

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prajwal/prajgpt/internal/models"
)

// Builder accumulates an index build in temporary files. Commit renames
// the database first and the manifest last, so a reader that sees the
// new manifest also sees the new database. Readers holding the old
// files keep a consistent view until they reopen.
type Builder struct {
	db             *DB
	dir            string
	embeddingModel string
	dimension      int
	documents      int
	chunks         int
}

// NewBuilder starts a fresh build under dir. Any leftover temp files
// from a crashed build are discarded first.
func NewBuilder(dir, embeddingModel string) (*Builder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	tmpDB := filepath.Join(dir, DBFileName+".build")
	for _, stale := range []string{tmpDB, tmpDB + "-wal", tmpDB + "-shm"} {
		_ = os.Remove(stale)
	}

	db, err := openDB(tmpDB)
	if err != nil {
		return nil, err
	}

	return &Builder{
		db:             db,
		dir:            dir,
		embeddingModel: embeddingModel,
	}, nil
}

// AddDocument registers a source document.
func (b *Builder) AddDocument(doc models.Document) error {
	_, err := b.db.Exec(`
		INSERT INTO documents (id, path, name, ingested_at) VALUES (?, ?, ?, ?)
	`, doc.DocID, doc.Path, doc.Name, time.Now())
	if err != nil {
		return fmt.Errorf("inserting document %s: %w", doc.Name, err)
	}
	b.documents++
	return nil
}

// Add appends one (chunk, vector) pair. The first vector fixes the
// index dimension; later mismatches are rejected.
func (b *Builder) Add(chunk models.Chunk, vector []float64) error {
	if len(vector) == 0 {
		return fmt.Errorf("empty vector for chunk %s", chunk.ChunkID)
	}
	if b.dimension == 0 {
		b.dimension = len(vector)
	} else if len(vector) != b.dimension {
		return fmt.Errorf("invalid embedding dimension: expected %d, got %d", b.dimension, len(vector))
	}

	_, err := b.db.Exec(`
		INSERT INTO chunks (id, doc_id, file, seq, content, start_offset, end_offset)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, chunk.ChunkID, chunk.DocID, chunk.File, chunk.Seq, chunk.Content, chunk.Start, chunk.End)
	if err != nil {
		return fmt.Errorf("inserting chunk %s: %w", chunk.ChunkID, err)
	}

	_, err = b.db.Exec(`
		INSERT INTO embeddings (chunk_id, vector) VALUES (?, ?)
	`, chunk.ChunkID, vectorToBlob(vector))
	if err != nil {
		return fmt.Errorf("inserting embedding for chunk %s: %w", chunk.ChunkID, err)
	}

	b.chunks++
	return nil
}

// Chunks returns how many entries the build holds so far.
func (b *Builder) Chunks() int { return b.chunks }

// Commit finalizes the build and swaps it into place.
func (b *Builder) Commit() (Manifest, error) {
	manifest := Manifest{
		Dimension:      b.dimension,
		EmbeddingModel: b.embeddingModel,
		Documents:      b.documents,
		Chunks:         b.chunks,
		BuiltAt:        time.Now().UTC(),
	}
	tmpDB := b.db.Path()
	if err := b.db.Close(); err != nil {
		return manifest, fmt.Errorf("closing build database: %w", err)
	}
	b.db = nil

	tmpManifest := filepath.Join(b.dir, ManifestFileName+".build")
	if err := writeManifest(tmpManifest, manifest); err != nil {
		return manifest, err
	}

	if err := os.Rename(tmpDB, filepath.Join(b.dir, DBFileName)); err != nil {
		return manifest, fmt.Errorf("swapping index database: %w", err)
	}
	if err := os.Rename(tmpManifest, filepath.Join(b.dir, ManifestFileName)); err != nil {
		return manifest, fmt.Errorf("swapping manifest: %w", err)
	}

	// WAL sidecars belong to the old temp path
	_ = os.Remove(tmpDB + "-wal")
	_ = os.Remove(tmpDB + "-shm")

	return manifest, nil
}

// Abort discards the build, leaving any live index untouched.
func (b *Builder) Abort() error {
	if b.db == nil {
		return nil
	}
	path := b.db.Path()
	err := b.db.Close()
	b.db = nil
	for _, stale := range []string{path, path + "-wal", path + "-shm"} {
		_ = os.Remove(stale)
	}
	return err
}
