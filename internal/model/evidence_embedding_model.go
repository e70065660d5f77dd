package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type EvidenceEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChunkId        string          `gorm:"uniqueIndex;not null"`
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // Gemini text-embedding-004 uses 768 dimensions
	DocumentId     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Source         string
	ChunkIndex     int       `gorm:"default:0"` // 0-based index for ordering
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (EvidenceEmbedding) TableName() string {
	return "evidence_embeddings"
}
