// ABOUTME: Manifest sidecar describing the persisted vector index
// ABOUTME: Read-side consistency checks compare manifest against the DB
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Index file names inside the vector store directory.
const (
	DBFileName       = "index.db"
	ManifestFileName = "manifest.json"
)

// Manifest describes an index build. It is written last during a build
// so a complete manifest always points at a complete database.
type Manifest struct {
	Dimension      int       `json:"dimension"`
	EmbeddingModel string    `json:"embedding_model"`
	Documents      int       `json:"documents"`
	Chunks         int       `json:"chunks"`
	BuiltAt        time.Time `json:"built_at"`
}

// writeManifest writes the manifest as JSON to the given path.
func writeManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// readManifest loads and validates a manifest file.
func readManifest(path string) (Manifest, error) {
	var m Manifest

	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Dimension < 0 || (m.Chunks > 0 && m.Dimension == 0) {
		return m, fmt.Errorf("manifest has invalid dimension %d for %d chunks", m.Dimension, m.Chunks)
	}
	return m, nil
}
