// ABOUTME: Tests for the persisted vector index
// ABOUTME: Covers build/commit/open roundtrip, search ordering, and consistency checks
package index

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prajwal/prajgpt/internal/models"
)

func buildTestIndex(t *testing.T, dir string) Manifest {
	t.Helper()

	builder, err := NewBuilder(dir, "nomic-embed-text")
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}

	doc := models.Document{DocID: "doc_1", Path: "/kb/notes.md", Name: "notes.md"}
	if err := builder.AddDocument(doc); err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}

	chunks := []struct {
		id     string
		text   string
		vector []float64
	}{
		{"doc_1:0", "about cats", []float64{1, 0, 0}},
		{"doc_1:1", "about dogs", []float64{0, 1, 0}},
		{"doc_1:2", "about code", []float64{0, 0, 1}},
	}
	for i, c := range chunks {
		chunk := models.Chunk{
			ChunkID: c.id, DocID: "doc_1", File: "notes.md",
			Seq: i, Content: c.text, Start: i * 10, End: i*10 + 10,
		}
		if err := builder.Add(chunk, c.vector); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	manifest, err := builder.Commit()
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	return manifest
}

func TestBuildCommitOpenRoundtrip(t *testing.T) {
	dir := t.TempDir()
	manifest := buildTestIndex(t, dir)

	if manifest.Dimension != 3 {
		t.Errorf("Dimension = %d, want 3", manifest.Dimension)
	}
	if manifest.Documents != 1 {
		t.Errorf("Documents = %d, want 1", manifest.Documents)
	}
	if manifest.Chunks != 3 {
		t.Errorf("Chunks = %d, want 3", manifest.Chunks)
	}

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}

	docs, err := store.Documents()
	if err != nil {
		t.Fatalf("Documents() error = %v", err)
	}
	if len(docs) != 1 || docs[0].Name != "notes.md" {
		t.Errorf("Documents() = %+v, want one notes.md", docs)
	}

	// Build artifacts must not remain after commit
	if _, err := os.Stat(filepath.Join(dir, DBFileName+".build")); !errors.Is(err, os.ErrNotExist) {
		t.Error("temp build database still present after Commit()")
	}
}

func TestSearchSimilar_OrderingAndMetadata(t *testing.T) {
	dir := t.TempDir()
	buildTestIndex(t, dir)

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	// Closest to the "dogs" axis, with a little cat mixed in
	results, err := store.SearchSimilar([]float64{0.3, 1, 0}, 2)
	if err != nil {
		t.Fatalf("SearchSimilar() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Content != "about dogs" {
		t.Errorf("top result = %q, want %q", results[0].Content, "about dogs")
	}
	if results[1].Content != "about cats" {
		t.Errorf("second result = %q, want %q", results[1].Content, "about cats")
	}
	if results[0].SimilarityScore <= results[1].SimilarityScore {
		t.Errorf("results not sorted: %f <= %f", results[0].SimilarityScore, results[1].SimilarityScore)
	}
	if results[0].File != "notes.md" || results[0].DocID != "doc_1" {
		t.Errorf("metadata not carried through: %+v", results[0].Chunk)
	}
	if results[0].Start != 10 || results[0].End != 20 {
		t.Errorf("offsets = [%d, %d), want [10, 20)", results[0].Start, results[0].End)
	}
}

func TestSearchSimilar_DimensionMismatch(t *testing.T) {
	dir := t.TempDir()
	buildTestIndex(t, dir)

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	if _, err := store.SearchSimilar([]float64{1, 2}, 3); err == nil {
		t.Error("SearchSimilar() error = nil for wrong dimension, want error")
	}
}

func TestEmptyIndexReturnsZeroResults(t *testing.T) {
	dir := t.TempDir()

	builder, err := NewBuilder(dir, "nomic-embed-text")
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	if _, err := builder.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	results, err := store.SearchSimilar([]float64{1, 0, 0}, 5)
	if err != nil {
		t.Fatalf("SearchSimilar() error = %v, want zero results without error", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestOpen_MissingIndexNotReady(t *testing.T) {
	if _, err := Open(t.TempDir()); !errors.Is(err, ErrNotReady) {
		t.Errorf("Open() error = %v, want ErrNotReady", err)
	}
}

func TestOpen_ManifestMismatchNotReady(t *testing.T) {
	dir := t.TempDir()
	manifest := buildTestIndex(t, dir)

	// Claim more chunks than the database holds
	manifest.Chunks = 99
	if err := writeManifest(filepath.Join(dir, ManifestFileName), manifest); err != nil {
		t.Fatalf("writeManifest() error = %v", err)
	}

	if _, err := Open(dir); !errors.Is(err, ErrNotReady) {
		t.Errorf("Open() error = %v, want ErrNotReady", err)
	}
}

func TestOpen_DatabaseAheadOfManifestNotReady(t *testing.T) {
	dir := t.TempDir()
	buildTestIndex(t, dir)

	// A commit renames the database before the manifest; a reader that
	// lands in between sees extra chunks the manifest doesn't know
	// about. It must report not ready rather than serve a partial view.
	db, err := openDB(filepath.Join(dir, DBFileName))
	if err != nil {
		t.Fatalf("openDB() error = %v", err)
	}
	if _, err := db.Exec(
		"INSERT INTO chunks (id, doc_id, file, seq, content, start_offset, end_offset) VALUES (?, ?, ?, ?, ?, ?, ?)",
		"doc_1:3", "doc_1", "notes.md", 3, "about birds", 30, 40,
	); err != nil {
		t.Fatalf("insert chunk error = %v", err)
	}
	if _, err := db.Exec("INSERT INTO embeddings (chunk_id, vector) VALUES (?, ?)", "doc_1:3", vectorToBlob([]float64{1, 1, 0})); err != nil {
		t.Fatalf("insert embedding error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := Open(dir); !errors.Is(err, ErrNotReady) {
		t.Errorf("Open() error = %v, want ErrNotReady", err)
	}
}

func TestBuilder_RejectsDimensionDrift(t *testing.T) {
	builder, err := NewBuilder(t.TempDir(), "nomic-embed-text")
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	defer func() { _ = builder.Abort() }()

	if err := builder.AddDocument(models.Document{DocID: "doc_1", Path: "/a", Name: "a.txt"}); err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}
	chunk := models.Chunk{ChunkID: "doc_1:0", DocID: "doc_1", File: "a.txt", Content: "x", End: 1}
	if err := builder.Add(chunk, []float64{1, 2, 3}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	chunk.ChunkID = "doc_1:1"
	chunk.Seq = 1
	if err := builder.Add(chunk, []float64{1, 2}); err == nil {
		t.Error("Add() error = nil for mismatched dimension, want error")
	}
}

func TestBuilder_AbortLeavesLiveIndexUntouched(t *testing.T) {
	dir := t.TempDir()
	buildTestIndex(t, dir)

	builder, err := NewBuilder(dir, "nomic-embed-text")
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	if err := builder.AddDocument(models.Document{DocID: "doc_2", Path: "/b", Name: "b.txt"}); err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}
	if err := builder.Abort(); err != nil {
		t.Fatalf("Abort() error = %v", err)
	}

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() after Abort() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d after aborted rebuild, want 3", count)
	}
}

func TestVectorBlobRoundtrip(t *testing.T) {
	vector := []float64{0.5, -1.25, 3.14159, 0}
	got := blobToVector(vectorToBlob(vector))

	if len(got) != len(vector) {
		t.Fatalf("len = %d, want %d", len(got), len(vector))
	}
	for i := range vector {
		if got[i] != vector[i] {
			t.Errorf("vector[%d] = %v, want %v", i, got[i], vector[i])
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0.0},
		{"length mismatch", []float64{1}, []float64{1, 1}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}
