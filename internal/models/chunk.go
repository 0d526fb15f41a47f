// ABOUTME: Chunk is the unit of embedding and retrieval
// ABOUTME: Carries rune offsets back into its source document
package models

// Chunk is a bounded substring of a Document.
//
// Start and End are rune offsets into the source document content,
// half-open: [Start, End). Seq is the chunk's position within the
// document, starting at 0.
type Chunk struct {
	ChunkID string `json:"chunk_id"`
	DocID   string `json:"doc_id"`
	File    string `json:"file"`
	Seq     int    `json:"seq"`
	Content string `json:"content"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// ScoredChunk is a search result: a chunk plus its similarity score.
type ScoredChunk struct {
	Chunk
	SimilarityScore float64 `json:"similarity_score"`
}
