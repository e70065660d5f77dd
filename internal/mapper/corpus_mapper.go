package mapper

import (
	"encoding/json"

	"ai-receptionist-be/internal/entity"
	"ai-receptionist-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type CorpusMapper struct{}

func NewCorpusMapper() *CorpusMapper {
	return &CorpusMapper{}
}

func (m *CorpusMapper) DocumentToModel(e *entity.Document) *model.Document {
	var metadata datatypes.JSON
	if e.Metadata != nil {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			metadata = raw
		}
	}
	return &model.Document{
		Id:        e.Id,
		Title:     e.Title,
		Source:    e.Source,
		Content:   e.Content,
		Metadata:  metadata,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *CorpusMapper) DocumentToEntity(mod *model.Document) *entity.Document {
	var metadata map[string]interface{}
	if len(mod.Metadata) > 0 {
		_ = json.Unmarshal(mod.Metadata, &metadata)
	}
	return &entity.Document{
		Id:        mod.Id,
		Title:     mod.Title,
		Source:    mod.Source,
		Content:   mod.Content,
		Metadata:  metadata,
		CreatedAt: mod.CreatedAt,
		UpdatedAt: mod.UpdatedAt,
	}
}

func (m *CorpusMapper) ChunkToModel(e *entity.EvidenceChunk) *model.EvidenceEmbedding {
	return &model.EvidenceEmbedding{
		Id:             e.Id,
		ChunkId:        e.ChunkID,
		Document:       e.Content,
		EmbeddingValue: pgvector.NewVector(e.Embedding),
		DocumentId:     e.DocumentId,
		Source:         e.Source,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *CorpusMapper) ChunkToEntity(mod *model.EvidenceEmbedding) *entity.EvidenceChunk {
	return &entity.EvidenceChunk{
		Id:         mod.Id,
		ChunkID:    mod.ChunkId,
		DocumentId: mod.DocumentId,
		Source:     mod.Source,
		Content:    mod.Document,
		ChunkIndex: mod.ChunkIndex,
		Embedding:  mod.EmbeddingValue.Slice(),
		CreatedAt:  mod.CreatedAt,
	}
}
