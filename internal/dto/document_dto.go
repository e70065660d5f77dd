package dto

import (
	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	Title    string            `json:"title" validate:"required"`
	Source   string            `json:"source" validate:"required"`
	Content  string            `json:"content" validate:"required"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type CreateDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

// PublishEmbedDocumentMessage is the payload published to the embed topic
// when a document needs (re)indexing.
type PublishEmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
