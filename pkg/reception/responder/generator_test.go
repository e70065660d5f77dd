package responder

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"ai-receptionist-be/pkg/llm"
	"ai-receptionist-be/pkg/reception/prompt"
	"ai-receptionist-be/pkg/retrieval"
)

type stubLLM struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Generate(ctx context.Context, p string, options ...llm.Option) (string, error) {
	s.lastPrompt = p
	return s.response, s.err
}

type stubSearcher struct {
	chunks []retrieval.Chunk
	err    error
}

func (s *stubSearcher) TopK(ctx context.Context, query string, k int) ([]retrieval.Chunk, error) {
	return s.chunks, s.err
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestRespond(t *testing.T) {
	searcher := &stubSearcher{chunks: []retrieval.Chunk{
		{ChunkID: "services_chunk_0", Source: "services.md", Content: "We provide SAP integration.", Score: 0.4},
		{ChunkID: "services_chunk_1", Source: "services.md", Content: "Cloud migration is a core offering.", Score: 0.6},
	}}
	provider := &stubLLM{response: "We provide SAP integration and cloud migration."}

	g := NewGenerator(provider, searcher, 3, testLogger())
	res := g.Respond(context.Background(), "what do you offer?", "Maria")

	if res.LLMError != "" {
		t.Fatalf("unexpected LLMError: %q", res.LLMError)
	}
	if res.Answer != provider.response {
		t.Errorf("Answer = %q", res.Answer)
	}
	if len(res.UsedChunks) != 2 {
		t.Fatalf("UsedChunks = %d, want 2", len(res.UsedChunks))
	}
	if res.UsedChunks[0].ChunkID != "services_chunk_0" {
		t.Errorf("ChunkID = %q", res.UsedChunks[0].ChunkID)
	}
	if res.UsedChunks[0].Score == nil || *res.UsedChunks[0].Score != 0.4 {
		t.Errorf("Score = %v, want 0.4", res.UsedChunks[0].Score)
	}

	// Completion tokens are the answer's word count.
	if want := len(strings.Fields(provider.response)); res.CompletionTokens != want {
		t.Errorf("CompletionTokens = %d, want %d", res.CompletionTokens, want)
	}
	if res.PromptTokens <= 0 {
		t.Errorf("PromptTokens = %d, want > 0", res.PromptTokens)
	}
	if res.Tokens != res.PromptTokens+res.CompletionTokens {
		t.Errorf("Tokens = %d, want %d", res.Tokens, res.PromptTokens+res.CompletionTokens)
	}

	// Evidence, session name and the fallback instruction all reach the model.
	if !strings.Contains(provider.lastPrompt, "We provide SAP integration.") {
		t.Error("prompt is missing evidence chunk content")
	}
	if !strings.Contains(provider.lastPrompt, "Maria") {
		t.Error("prompt is missing the session name")
	}
	if !strings.Contains(provider.lastPrompt, prompt.FallbackSentence) {
		t.Error("prompt is missing the verbatim fallback sentence")
	}
}

func TestRespondModelFailure(t *testing.T) {
	searcher := &stubSearcher{chunks: []retrieval.Chunk{
		{ChunkID: "c0", Source: "s", Content: "context", Score: 0.3},
	}}
	g := NewGenerator(&stubLLM{err: errors.New("model unavailable")}, searcher, 3, testLogger())

	res := g.Respond(context.Background(), "question", "")
	if res.LLMError == "" {
		t.Fatal("expected LLMError to be set")
	}
	if res.Answer != "Error: LLM invocation failed." {
		t.Errorf("Answer = %q", res.Answer)
	}
	if len(res.UsedChunks) != 1 {
		t.Errorf("UsedChunks = %d, want bookkeeping even on failure", len(res.UsedChunks))
	}
}

func TestRespondRetrievalFailure(t *testing.T) {
	// Retrieval failure degrades to an empty evidence set; the model is still
	// asked, with no context chunks.
	provider := &stubLLM{response: "answer"}
	g := NewGenerator(provider, &stubSearcher{err: errors.New("index down")}, 3, testLogger())

	res := g.Respond(context.Background(), "question", "")
	if res.LLMError != "" {
		t.Fatalf("unexpected LLMError: %q", res.LLMError)
	}
	if len(res.UsedChunks) != 0 {
		t.Errorf("UsedChunks = %d, want 0", len(res.UsedChunks))
	}
	if res.Answer != "answer" {
		t.Errorf("Answer = %q", res.Answer)
	}
}

func TestPreviewTruncation(t *testing.T) {
	long := strings.Repeat("a", previewLength+50)
	searcher := &stubSearcher{chunks: []retrieval.Chunk{
		{ChunkID: "c0", Source: "s", Content: long, Score: 0.2},
	}}
	g := NewGenerator(&stubLLM{response: "ok"}, searcher, 1, testLogger())

	res := g.Respond(context.Background(), "q", "")
	got := res.UsedChunks[0].Preview
	if len(got) != previewLength+len("...") {
		t.Errorf("preview length = %d, want %d", len(got), previewLength+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("preview %q should end with ellipsis", got[len(got)-10:])
	}
}
