package service

import (
	"context"
	"fmt"
	"time"

	"ai-receptionist-be/internal/entity"
	"ai-receptionist-be/internal/pkg/logger"
	"ai-receptionist-be/internal/repository/contract"
	"ai-receptionist-be/pkg/embedding"
	"ai-receptionist-be/pkg/utils"

	"github.com/google/uuid"
)

const (
	// ChunkSize: 800 chars keeps each chunk a self-contained statement for
	// grounding while staying well under embedding context limits.
	chunkSize    = 800
	chunkOverlap = 100
)

type IIndexerService interface {
	IndexDocument(ctx context.Context, documentId uuid.UUID) error
}

type indexerService struct {
	documentRepo      contract.DocumentRepository
	evidenceRepo      contract.EvidenceRepository
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewIndexerService(
	documentRepo contract.DocumentRepository,
	evidenceRepo contract.EvidenceRepository,
	embeddingProvider embedding.EmbeddingProvider,
	logger logger.ILogger,
) IIndexerService {
	return &indexerService{
		documentRepo:      documentRepo,
		evidenceRepo:      evidenceRepo,
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

func (s *indexerService) IndexDocument(ctx context.Context, documentId uuid.UUID) error {
	doc, err := s.documentRepo.FindById(ctx, documentId)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("document not found: %s", documentId)
	}

	chunks := utils.SplitText(doc.Content, chunkSize, chunkOverlap)
	s.logger.Info("indexer", "document split into chunks", map[string]interface{}{
		"document_id": documentId.String(),
		"chunks":      len(chunks),
	})

	newChunks := make([]*entity.EvidenceChunk, 0, len(chunks))
	for i, chunk := range chunks {
		res, err := s.embeddingProvider.Generate(chunk, embedding.TaskRetrievalDocument)
		if err != nil {
			s.logger.Error("indexer", "chunk embedding failed", map[string]interface{}{
				"document_id": documentId.String(),
				"chunk_index": i,
				"error":       err.Error(),
			})
			return err
		}

		newChunks = append(newChunks, &entity.EvidenceChunk{
			Id:         uuid.New(),
			ChunkID:    fmt.Sprintf("%s_chunk_%d", doc.Source, i),
			DocumentId: doc.Id,
			Source:     doc.Source,
			Content:    chunk,
			ChunkIndex: i,
			Embedding:  res.Embedding.Values,
			CreatedAt:  time.Now(),
		})
	}

	// Replace any previous index of this document atomically enough for a
	// single writer: old rows go first, then the fresh set.
	if err := s.evidenceRepo.DeleteByDocumentId(ctx, doc.Id); err != nil {
		return err
	}
	if len(newChunks) > 0 {
		if err := s.evidenceRepo.CreateBulk(ctx, newChunks); err != nil {
			return err
		}
	}

	s.logger.Info("indexer", "document indexed", map[string]interface{}{
		"document_id": documentId.String(),
		"chunks":      len(newChunks),
	})
	return nil
}
