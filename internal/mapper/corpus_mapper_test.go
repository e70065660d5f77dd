package mapper

import (
	"testing"
	"time"

	"ai-receptionist-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentRoundTrip(t *testing.T) {
	m := NewCorpusMapper()
	now := time.Now().Truncate(time.Second)

	doc := &entity.Document{
		Id:      uuid.New(),
		Title:   "Services",
		Source:  "services.md",
		Content: "We offer cloud migration.",
		Metadata: map[string]interface{}{
			"department": "sales",
		},
		CreatedAt: now,
	}

	got := m.DocumentToEntity(m.DocumentToModel(doc))

	assert.Equal(t, doc.Id, got.Id)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.Source, got.Source)
	assert.Equal(t, doc.Content, got.Content)
	require.NotNil(t, got.Metadata)
	assert.Equal(t, "sales", got.Metadata["department"])
}

func TestChunkRoundTrip(t *testing.T) {
	m := NewCorpusMapper()

	chunk := &entity.EvidenceChunk{
		Id:         uuid.New(),
		ChunkID:    "services.md_chunk_2",
		DocumentId: uuid.New(),
		Source:     "services.md",
		Content:    "Cloud migration is a core offering.",
		ChunkIndex: 2,
		Embedding:  []float32{0.1, 0.2, 0.3},
	}

	mod := m.ChunkToModel(chunk)
	assert.Equal(t, chunk.ChunkID, mod.ChunkId)
	assert.Equal(t, chunk.Content, mod.Document)

	got := m.ChunkToEntity(mod)
	assert.Equal(t, chunk.ChunkID, got.ChunkID)
	assert.Equal(t, chunk.DocumentId, got.DocumentId)
	assert.Equal(t, chunk.ChunkIndex, got.ChunkIndex)
	require.Len(t, got.Embedding, 3)
	assert.InDelta(t, 0.2, got.Embedding[1], 1e-6)
}

func TestDocumentWithoutMetadata(t *testing.T) {
	m := NewCorpusMapper()

	doc := &entity.Document{Id: uuid.New(), Title: "t", Source: "s", Content: "c"}
	got := m.DocumentToEntity(m.DocumentToModel(doc))
	assert.Nil(t, got.Metadata)
}
