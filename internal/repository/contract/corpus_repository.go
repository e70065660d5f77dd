package contract

import (
	"context"

	"ai-receptionist-be/internal/entity"

	"github.com/google/uuid"
)

// DocumentRepository persists corpus source documents.
type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	Count(ctx context.Context) (int64, error)
}

// EvidenceRepository persists and searches embedded evidence chunks. The
// corpus is written by ingestion and read-only during query serving.
type EvidenceRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.EvidenceChunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	Count(ctx context.Context) (int64, error)

	// SearchNearest returns the k chunks closest to the query vector by
	// cosine distance, each with Distance populated.
	SearchNearest(ctx context.Context, vector []float32, k int) ([]*entity.EvidenceChunk, error)
}
