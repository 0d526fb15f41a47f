// ABOUTME: Splits document text into fixed-size overlapping chunks
// ABOUTME: Chunks are rune-addressed so offsets survive multi-byte text
package chunker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prajwal/prajgpt/internal/models"
)

// ErrEmptyDocument is returned when a document has no chunkable text.
var ErrEmptyDocument = errors.New("cannot chunk empty document")

// Chunker splits documents into overlapping fixed-size chunks.
type Chunker struct {
	size    int
	overlap int
}

// New validates the (size, overlap) pair and returns a Chunker.
// Overlap must be smaller than size or the window would never advance.
func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap must be in [0, size), got %d with size %d", overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Size returns the target chunk size in runes.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the overlap window in runes.
func (c *Chunker) Overlap() int { return c.overlap }

// Split cuts the document into ordered chunks. Consecutive chunks share
// exactly the configured overlap; the final chunk may be shorter than
// the target size. A document shorter than one chunk yields one chunk.
func (c *Chunker) Split(doc models.Document) ([]models.Chunk, error) {
	if strings.TrimSpace(doc.Content) == "" {
		return nil, ErrEmptyDocument
	}

	runes := []rune(doc.Content)
	step := c.size - c.overlap

	var chunks []models.Chunk
	for start, seq := 0, 0; ; start, seq = start+step, seq+1 {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, models.Chunk{
			ChunkID: fmt.Sprintf("%s:%d", doc.DocID, seq),
			DocID:   doc.DocID,
			File:    doc.Name,
			Seq:     seq,
			Content: string(runes[start:end]),
			Start:   start,
			End:     end,
		})

		if end == len(runes) {
			break
		}
	}

	return chunks, nil
}
