package retrieval

import (
	"context"
	"fmt"
	"log"

	"ai-receptionist-be/internal/entity"
	"ai-receptionist-be/internal/repository/contract"
	"ai-receptionist-be/pkg/embedding"
)

// Chunk is one retrieved unit of evidence. Score is the cosine distance to
// the query: lower means more similar.
type Chunk struct {
	ChunkID string
	Source  string
	Content string
	Score   float64
}

// Searcher finds the k nearest evidence chunks for a query.
type Searcher interface {
	TopK(ctx context.Context, query string, k int) ([]Chunk, error)
}

// VectorSearcher embeds the query and runs a pgvector nearest-neighbor
// search over the pre-built corpus. The corpus is read-only at query time.
type VectorSearcher struct {
	embeddingProvider embedding.EmbeddingProvider
	evidenceRepo      contract.EvidenceRepository
	logger            *log.Logger
}

var _ Searcher = &VectorSearcher{}

// NewVectorSearcher creates a new vector searcher
func NewVectorSearcher(
	embeddingProvider embedding.EmbeddingProvider,
	evidenceRepo contract.EvidenceRepository,
	logger *log.Logger,
) *VectorSearcher {
	return &VectorSearcher{
		embeddingProvider: embeddingProvider,
		evidenceRepo:      evidenceRepo,
		logger:            logger,
	}
}

func (s *VectorSearcher) TopK(ctx context.Context, query string, k int) ([]Chunk, error) {
	res, err := s.embeddingProvider.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	rows, err := s.evidenceRepo.SearchNearest(ctx, res.Embedding.Values, k)
	if err != nil {
		return nil, fmt.Errorf("nearest-neighbor search: %w", err)
	}

	chunks := make([]Chunk, len(rows))
	for i, row := range rows {
		chunks[i] = fromEntity(row)
	}
	return chunks, nil
}

func fromEntity(row *entity.EvidenceChunk) Chunk {
	return Chunk{
		ChunkID: row.ChunkID,
		Source:  row.Source,
		Content: row.Content,
		Score:   row.Distance,
	}
}
