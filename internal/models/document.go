// ABOUTME: Document represents a source file staged for ingestion
// ABOUTME: Documents are immutable once discovered; re-ingestion replaces them
package models

import (
	"strings"
	"time"
)

// Document is a single text file loaded from the knowledge directory.
type Document struct {
	DocID      string    `json:"doc_id"`
	Path       string    `json:"path"`
	Name       string    `json:"name"`
	Content    string    `json:"content,omitempty"`
	IngestedAt time.Time `json:"ingested_at"`
}

// Empty reports whether the document has no usable content.
// Whitespace-only files count as empty.
func (d *Document) Empty() bool {
	return strings.TrimSpace(d.Content) == ""
}
