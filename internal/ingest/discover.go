// ABOUTME: Document discovery for the ingestion pipeline
// ABOUTME: Walks a directory for markdown and plain-text sources
package ingest

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

var ingestibleExts = map[string]bool{
	".md":  true,
	".txt": true,
}

// Discover returns the ingestible files under dir, sorted by path so
// repeated runs see the same order.
func Discover(dir string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ingestibleExts[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	sort.Strings(paths)
	return paths, nil
}
