// ABOUTME: Read side of the persisted vector index
// ABOUTME: Cosine similarity search over embedding BLOBs, as in the memory stores
package index

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/prajwal/prajgpt/internal/models"
)

// ErrNotReady is returned when the index files are missing or the
// manifest disagrees with the database. Callers report "not ready"
// instead of failing hard.
var ErrNotReady = errors.New("vector index not ready")

// Store is a read handle on a committed index.
type Store struct {
	db       *DB
	manifest Manifest
}

// Open loads the index under dir and verifies it against its manifest.
// A missing or inconsistent index yields ErrNotReady.
func Open(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, DBFileName)
	manifestPath := filepath.Join(dir, ManifestFileName)

	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: no index at %s", ErrNotReady, dir)
	}

	manifest, err := readManifest(manifestPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: missing manifest at %s", ErrNotReady, manifestPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrNotReady, err)
	}

	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	store := &Store{db: db, manifest: manifest}
	if err := store.verify(); err != nil {
		// Commit renames the database before the manifest, so a reader
		// can catch the new database with the old manifest. Re-read the
		// manifest once before giving up.
		if fresh, rerr := readManifest(manifestPath); rerr == nil {
			store.manifest = fresh
			if store.verify() == nil {
				return store, nil
			}
		}
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// verify checks that entry count equals chunk count and both match
// the manifest.
func (s *Store) verify() error {
	chunks, err := s.count("chunks")
	if err != nil {
		return err
	}
	embeddings, err := s.count("embeddings")
	if err != nil {
		return err
	}

	if chunks != embeddings {
		return fmt.Errorf("%w: %d chunks but %d embeddings", ErrNotReady, chunks, embeddings)
	}
	if chunks != s.manifest.Chunks {
		return fmt.Errorf("%w: manifest says %d chunks, database has %d", ErrNotReady, s.manifest.Chunks, chunks)
	}
	return nil
}

func (s *Store) count(table string) (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}

// Manifest returns the manifest the store was opened with.
func (s *Store) Manifest() Manifest {
	return s.manifest
}

// Count returns the number of indexed chunks.
func (s *Store) Count() (int, error) {
	return s.count("chunks")
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SearchSimilar returns the k chunks closest to the query vector by
// cosine similarity, best first. An empty index returns zero results.
func (s *Store) SearchSimilar(queryVector []float64, k int) ([]models.ScoredChunk, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if s.manifest.Chunks == 0 {
		return nil, nil
	}
	if len(queryVector) != s.manifest.Dimension {
		return nil, fmt.Errorf("query dimension %d does not match index dimension %d", len(queryVector), s.manifest.Dimension)
	}

	rows, err := s.db.Query(`
		SELECT c.id, c.doc_id, c.file, c.seq, c.content, c.start_offset, c.end_offset, e.vector
		FROM chunks c
		JOIN embeddings e ON e.chunk_id = c.id
	`)
	if err != nil {
		return nil, fmt.Errorf("scanning index: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []models.ScoredChunk
	for rows.Next() {
		var (
			chunk models.Chunk
			blob  []byte
		)
		if err := rows.Scan(&chunk.ChunkID, &chunk.DocID, &chunk.File, &chunk.Seq,
			&chunk.Content, &chunk.Start, &chunk.End, &blob); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		results = append(results, models.ScoredChunk{
			Chunk:           chunk,
			SimilarityScore: CosineSimilarity(queryVector, blobToVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating index: %w", err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Documents lists the indexed documents in ingestion order.
func (s *Store) Documents() ([]models.Document, error) {
	rows, err := s.db.Query(`
		SELECT id, path, name, ingested_at FROM documents ORDER BY ingested_at ASC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(&doc.DocID, &doc.Path, &doc.Name, &doc.IngestedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// vectorToBlob serializes a vector as little-endian float64s.
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector deserializes a little-endian float64 BLOB.
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}

// CosineSimilarity calculates cosine similarity between two vectors
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
