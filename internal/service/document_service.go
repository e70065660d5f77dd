package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-receptionist-be/internal/dto"
	"ai-receptionist-be/internal/entity"
	"ai-receptionist-be/internal/pkg/logger"
	"ai-receptionist-be/internal/repository/contract"

	"github.com/google/uuid"
)

type IDocumentService interface {
	CreateDocument(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error)
}

type documentService struct {
	documentRepo contract.DocumentRepository
	publisher    IPublisherService
	logger       logger.ILogger
}

func NewDocumentService(
	documentRepo contract.DocumentRepository,
	publisher IPublisherService,
	logger logger.ILogger,
) IDocumentService {
	return &documentService{
		documentRepo: documentRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

func (s *documentService) CreateDocument(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error) {
	metadata := make(map[string]interface{}, len(req.Metadata))
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	doc := &entity.Document{
		Id:        uuid.New(),
		Title:     req.Title,
		Source:    req.Source,
		Content:   req.Content,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	// Indexing happens asynchronously; the document is queryable once the
	// consumer finishes embedding it.
	msgJson, err := json.Marshal(dto.PublishEmbedDocumentMessage{DocumentId: doc.Id})
	if err != nil {
		return nil, err
	}
	if err := s.publisher.Publish(ctx, msgJson); err != nil {
		s.logger.Error("document", "failed to publish embed message", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
		return nil, err
	}

	return &dto.CreateDocumentResponse{Id: doc.Id}, nil
}
