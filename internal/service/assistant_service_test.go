package service

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"ai-receptionist-be/internal/dto"
	"ai-receptionist-be/internal/repository/memory"
	"ai-receptionist-be/pkg/llm"
	"ai-receptionist-be/pkg/reception/ack"
	"ai-receptionist-be/pkg/reception/facts"
	"ai-receptionist-be/pkg/reception/intent"
	"ai-receptionist-be/pkg/reception/persona"
	"ai-receptionist-be/pkg/reception/relevance"
	"ai-receptionist-be/pkg/reception/responder"
	"ai-receptionist-be/pkg/reception/session"
	"ai-receptionist-be/pkg/retrieval"
)

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.response, s.err
}

type stubSearcher struct {
	chunks []retrieval.Chunk
	err    error
}

func (s *stubSearcher) TopK(ctx context.Context, query string, k int) ([]retrieval.Chunk, error) {
	return s.chunks, s.err
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// pipelineStubs lets each test script every model call site independently.
type pipelineStubs struct {
	nameValidator string // yes/no for the name validation call
	intentJSON    string // intent classifier response
	ackAnswer     string // yes/no for the acknowledgment call
	ragAnswer     string // grounded answer
	nearestScore  *float64
}

func newTestAssistant(t *testing.T, stubs pipelineStubs) IAssistantService {
	t.Helper()
	plog := log.New(io.Discard, "", 0)

	var chunks []retrieval.Chunk
	if stubs.nearestScore != nil {
		chunks = []retrieval.Chunk{{
			ChunkID: "corpus_chunk_0",
			Source:  "corpus.md",
			Content: "Company context.",
			Score:   *stubs.nearestScore,
		}}
	}
	searcher := &stubSearcher{chunks: chunks}

	sessions := session.NewManager(memory.NewSessionRepository(time.Hour))
	registry := persona.NewRegistry()

	return NewAssistantService(
		sessions,
		facts.NewExtractor(&stubLLM{response: stubs.nameValidator}, plog),
		intent.NewClassifier(&stubLLM{response: stubs.intentJSON}, plog),
		ack.NewDetector(&stubLLM{response: stubs.ackAnswer}, plog),
		relevance.NewClassifier(searcher, relevance.Thresholds{Tight: 1.1, Loose: 1.7}, plog),
		responder.NewGenerator(&stubLLM{response: stubs.ragAnswer}, searcher, 3, plog),
		registry,
		persona.NewTransformer(&stubLLM{response: ""}, registry, plog),
		nil, // no event publisher
		time.Minute,
		noopLogger{},
	)
}

func floatPtr(v float64) *float64 { return &v }

func TestAskContactShortCircuits(t *testing.T) {
	svc := newTestAssistant(t, pipelineStubs{
		nameValidator: "no",
		intentJSON:    `{"intent": "QUESTION", "response_text": null}`,
		ackAnswer:     "no",
	})

	res, err := svc.Ask(context.Background(), &dto.AskRequest{
		Query:     "you can reach me at maria@example.com",
		SessionId: "s1",
	}, "10.0.0.1")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if res.AgentType != AgentLeadCapture {
		t.Errorf("AgentType = %q, want %q", res.AgentType, AgentLeadCapture)
	}
	if !strings.Contains(res.Answer, "Draft") {
		t.Errorf("Answer = %q, want the draft prompt", res.Answer)
	}
}

func TestAskGreeting(t *testing.T) {
	svc := newTestAssistant(t, pipelineStubs{
		nameValidator: "no",
		intentJSON:    `{"intent": "GREETING_ONLY", "response_text": "Hello! Nice to meet you."}`,
	})

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Query: "hello there", SessionId: "s1"}, "10.0.0.1")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if res.AgentType != AgentGreeting {
		t.Errorf("AgentType = %q, want %q", res.AgentType, AgentGreeting)
	}
	if res.Answer != "Hello! Nice to meet you." {
		t.Errorf("Answer = %q", res.Answer)
	}
}

func TestAskAcknowledgmentUsesStoredName(t *testing.T) {
	svc := newTestAssistant(t, pipelineStubs{
		nameValidator: "yes",
		intentJSON:    `{"intent": "QUESTION", "response_text": null}`,
		ackAnswer:     "yes",
	})

	// First turn introduces the name.
	if _, err := svc.Ask(context.Background(), &dto.AskRequest{Query: "my name is Maria Lopez", SessionId: "s1"}, "ip"); err != nil {
		t.Fatalf("Ask: %v", err)
	}

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Query: "thanks, that's helpful", SessionId: "s1"}, "ip")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if res.AgentType != AgentAcknowledgment {
		t.Errorf("AgentType = %q, want %q", res.AgentType, AgentAcknowledgment)
	}
	if !strings.Contains(res.Answer, "Maria Lopez") {
		t.Errorf("Answer = %q, want stored name referenced", res.Answer)
	}
	if res.WordCount == 0 {
		t.Error("WordCount = 0, want the answer's word count")
	}
}

func TestAskHighlyRelevantRunsRetrieval(t *testing.T) {
	svc := newTestAssistant(t, pipelineStubs{
		nameValidator: "no",
		intentJSON:    `{"intent": "QUESTION", "response_text": null}`,
		ackAnswer:     "no",
		ragAnswer:     "We offer SAP integration and cloud migration.",
		nearestScore:  floatPtr(0.5),
	})

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Query: "what services do you offer?", SessionId: "s1"}, "ip")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if res.AgentType != AgentRag {
		t.Errorf("AgentType = %q, want %q", res.AgentType, AgentRag)
	}
	if res.Answer != "We offer SAP integration and cloud migration." {
		t.Errorf("Answer = %q", res.Answer)
	}
	if res.TopScore == nil || *res.TopScore != 0.5 {
		t.Errorf("TopScore = %v, want 0.5", res.TopScore)
	}
	if len(res.UsedChunks) != 1 {
		t.Errorf("UsedChunks = %d, want 1", len(res.UsedChunks))
	}
	if res.Tokens == 0 || res.CompletionTokens == 0 {
		t.Errorf("token accounting missing: tokens=%d completion=%d", res.Tokens, res.CompletionTokens)
	}
}

func TestAskSomewhatRelevant(t *testing.T) {
	svc := newTestAssistant(t, pipelineStubs{
		nameValidator: "no",
		intentJSON:    `{"intent": "QUESTION", "response_text": null}`,
		ackAnswer:     "no",
		nearestScore:  floatPtr(1.4),
	})

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Query: "do you also fix printers?", SessionId: "s1"}, "ip")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if res.AgentType != AgentOutOfScopeRelated {
		t.Errorf("AgentType = %q, want %q", res.AgentType, AgentOutOfScopeRelated)
	}
	if !strings.Contains(res.Answer, "Draft") {
		t.Errorf("Answer = %q, want draft suggestion", res.Answer)
	}
	if res.TopScore == nil || *res.TopScore != 1.4 {
		t.Errorf("TopScore = %v, want 1.4", res.TopScore)
	}
}

func TestAskNotRelevant(t *testing.T) {
	svc := newTestAssistant(t, pipelineStubs{
		nameValidator: "no",
		intentJSON:    `{"intent": "QUESTION", "response_text": null}`,
		ackAnswer:     "no",
		nearestScore:  floatPtr(2.5),
	})

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Query: "who won the game last night?", SessionId: "s1"}, "ip")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if res.AgentType != AgentOutOfScopeUnrelated {
		t.Errorf("AgentType = %q, want %q", res.AgentType, AgentOutOfScopeUnrelated)
	}
	if res.Answer != outOfScopeUnrelatedAnswer {
		t.Errorf("Answer = %q", res.Answer)
	}
}

func TestAskFallsBackToClientIP(t *testing.T) {
	svc := newTestAssistant(t, pipelineStubs{
		nameValidator: "yes",
		intentJSON:    `{"intent": "QUESTION", "response_text": null}`,
		ackAnswer:     "yes",
	})

	// No session id: the caller's address keys the session.
	if _, err := svc.Ask(context.Background(), &dto.AskRequest{Query: "I'm Raj"}, "203.0.113.9"); err != nil {
		t.Fatalf("Ask: %v", err)
	}

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Query: "ok thanks"}, "203.0.113.9")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !strings.Contains(res.Answer, "Raj") {
		t.Errorf("Answer = %q, want name remembered across turns keyed by IP", res.Answer)
	}
}

func TestAskResponseShapePerBranch(t *testing.T) {
	// Retrieval accounting fields belong to the grounded branch only.
	greeting := newTestAssistant(t, pipelineStubs{
		nameValidator: "no",
		intentJSON:    `{"intent": "GREETING_ONLY", "response_text": "Hello!"}`,
	})
	res, err := greeting.Ask(context.Background(), &dto.AskRequest{Query: "hi", SessionId: "s1"}, "ip")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	payload, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"tokens", "prompt_tokens", "completion_tokens", "used_chunks"} {
		if _, ok := fields[key]; ok {
			t.Errorf("greeting response carries %q: %s", key, payload)
		}
	}

	rag := newTestAssistant(t, pipelineStubs{
		nameValidator: "no",
		intentJSON:    `{"intent": "QUESTION", "response_text": null}`,
		ackAnswer:     "no",
		ragAnswer:     "We offer SAP integration.",
		nearestScore:  floatPtr(0.5),
	})
	res, err = rag.Ask(context.Background(), &dto.AskRequest{Query: "what do you offer?", SessionId: "s2"}, "ip")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	payload, err = json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	fields = map[string]interface{}{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"tokens", "used_chunks", "top_score"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("grounded response missing %q: %s", key, payload)
		}
	}
}
