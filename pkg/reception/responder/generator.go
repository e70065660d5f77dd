package responder

import (
	"context"
	"log"
	"strings"

	"ai-receptionist-be/pkg/llm"
	"ai-receptionist-be/pkg/reception/prompt"
	"ai-receptionist-be/pkg/retrieval"
)

const previewLength = 300

// UsedChunk is the bookkeeping record for one evidence chunk that grounded
// an answer.
type UsedChunk struct {
	ChunkID string
	Score   *float64
	Source  string
	Preview string
}

// Result carries the generated answer plus token accounting. When the model
// invocation itself failed, LLMError is set and Answer holds a descriptive
// failure message; the caller renders it instead of crashing.
type Result struct {
	Answer           string
	Tokens           int
	PromptTokens     int
	CompletionTokens int
	UsedChunks       []UsedChunk
	LLMError         string
}

// Generator produces grounded answers from the top-k nearest evidence
// chunks.
type Generator struct {
	llmProvider llm.LLMProvider
	searcher    retrieval.Searcher
	topK        int
	logger      *log.Logger
}

// NewGenerator creates a new retrieval-augmented responder
func NewGenerator(llmProvider llm.LLMProvider, searcher retrieval.Searcher, topK int, logger *log.Logger) *Generator {
	if topK <= 0 {
		topK = 3
	}
	return &Generator{
		llmProvider: llmProvider,
		searcher:    searcher,
		topK:        topK,
		logger:      logger,
	}
}

// Respond fetches evidence, builds the grounded prompt and invokes the model
// once. Retrieval failure degrades to an empty evidence set; only the model
// invocation itself produces an error-flagged result.
func (g *Generator) Respond(ctx context.Context, query string, sessionName string) *Result {
	chunks, err := g.searcher.TopK(ctx, query, g.topK)
	if err != nil {
		g.logger.Printf("[WARN] Evidence retrieval failed: %v", err)
		chunks = nil
	}

	usedChunks := make([]UsedChunk, 0, len(chunks))
	contextTexts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		score := chunk.Score
		usedChunks = append(usedChunks, UsedChunk{
			ChunkID: chunk.ChunkID,
			Score:   &score,
			Source:  chunk.Source,
			Preview: preview(chunk.Content),
		})
		contextTexts = append(contextTexts, chunk.Content)
		g.logger.Printf("[RETRIEVAL] Chunk %s (source: %s, score: %.4f)", chunk.ChunkID, chunk.Source, chunk.Score)
	}

	finalInput := prompt.NewBuilder(contextTexts, sessionName, query).Build()
	promptTokens := g.countPromptTokens(ctx, finalInput)

	answer, err := g.llmProvider.Generate(ctx, finalInput)
	if err != nil {
		g.logger.Printf("[ERROR] Answer generation failed: %v", err)
		return &Result{
			Answer:     "Error: LLM invocation failed.",
			UsedChunks: usedChunks,
			LLMError:   err.Error(),
		}
	}

	// Completion tokens are approximated by word count; no token-count API
	// covers the completion side.
	completionTokens := len(strings.Fields(answer))

	g.logger.Printf("[TOKENS] prompt=%d completion=%d total=%d",
		promptTokens, completionTokens, promptTokens+completionTokens)

	return &Result{
		Answer:           answer,
		Tokens:           promptTokens + completionTokens,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		UsedChunks:       usedChunks,
	}
}

// countPromptTokens prefers the provider's native counting facility and
// falls back to estimation.
func (g *Generator) countPromptTokens(ctx context.Context, text string) int {
	if counter, ok := g.llmProvider.(llm.TokenCounter); ok {
		n, err := counter.CountTokens(ctx, text)
		if err == nil {
			return n
		}
		g.logger.Printf("[WARN] Token counting failed, estimating: %v", err)
	}
	return llm.EstimateTokens(text)
}

func preview(content string) string {
	if len(content) <= previewLength {
		return content
	}
	return content[:previewLength] + "..."
}
