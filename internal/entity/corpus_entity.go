package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is one source document of the knowledge corpus.
type Document struct {
	Id        uuid.UUID
	Title     string
	Source    string // originating document identifier (e.g. file name)
	Content   string
	Metadata  map[string]interface{}
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// EvidenceChunk is one retrievable unit of text from a document. Embedding
// holds the chunk vector at write time; Distance is only populated by
// nearest-neighbor searches.
type EvidenceChunk struct {
	Id         uuid.UUID
	ChunkID    string // unique per corpus, e.g. "<doc>_chunk_3"
	DocumentId uuid.UUID
	Source     string
	Content    string
	ChunkIndex int
	Embedding  []float32
	Distance   float64
	CreatedAt  time.Time
}
