package implementation

import (
	"context"

	"ai-receptionist-be/internal/entity"
	"ai-receptionist-be/internal/mapper"
	"ai-receptionist-be/internal/model"
	"ai-receptionist-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EvidenceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CorpusMapper
}

func NewEvidenceRepository(db *gorm.DB) contract.EvidenceRepository {
	return &EvidenceRepositoryImpl{
		db:     db,
		mapper: mapper.NewCorpusMapper(),
	}
}

func (r *EvidenceRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.EvidenceChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.EvidenceEmbedding, len(chunks))
	for i, chunk := range chunks {
		models[i] = r.mapper.ChunkToModel(chunk)
	}
	return r.db.WithContext(ctx).CreateInBatches(models, 100).Error
}

func (r *EvidenceRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.EvidenceEmbedding{}).Error
}

func (r *EvidenceRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.EvidenceEmbedding{}).Count(&count).Error
	return count, err
}

// SearchNearest orders by pgvector cosine distance (embedding_value <=> q)
// and returns the distance alongside each chunk. Lower distance = closer.
func (r *EvidenceRepositoryImpl) SearchNearest(ctx context.Context, vector []float32, k int) ([]*entity.EvidenceChunk, error) {
	if k <= 0 {
		k = 3
	}

	type row struct {
		model.EvidenceEmbedding
		Distance float64
	}
	var rows []row

	queryVector := pgvector.NewVector(vector)

	err := r.db.WithContext(ctx).
		Table("evidence_embeddings").
		Select("evidence_embeddings.*, (embedding_value <=> ?) as distance", queryVector).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:  "embedding_value <=> ?",
			Vars: []interface{}{queryVector},
		}}).
		Limit(k).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	chunks := make([]*entity.EvidenceChunk, len(rows))
	for i, rw := range rows {
		chunk := r.mapper.ChunkToEntity(&rw.EvidenceEmbedding)
		chunk.Distance = rw.Distance
		chunks[i] = chunk
	}
	return chunks, nil
}
