// ABOUTME: SQLite schema for the vector index
// ABOUTME: Documents, chunks, and one embedding BLOB per chunk
package index

// Schema contains all SQL statements for index initialization
const Schema = `
-- Source documents
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    path TEXT NOT NULL,
    name TEXT NOT NULL,
    ingested_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Chunks with rune offsets back into their document
CREATE TABLE IF NOT EXISTS chunks (
    id TEXT PRIMARY KEY,
    doc_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    file TEXT NOT NULL,
    seq INTEGER NOT NULL,
    content TEXT NOT NULL,
    start_offset INTEGER NOT NULL,
    end_offset INTEGER NOT NULL
);

-- One embedding vector per chunk, float64 little-endian BLOB
CREATE TABLE IF NOT EXISTS embeddings (
    chunk_id TEXT PRIMARY KEY REFERENCES chunks(id) ON DELETE CASCADE,
    vector BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chunks_doc ON chunks(doc_id);
`
