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
	"ai-receptionist-be/pkg/llm"
	"ai-receptionist-be/pkg/maildraft"
)

// queuedLLM plays back scripted responses in call order.
type queuedLLM struct {
	responses []string
	calls     int
}

func (s *queuedLLM) next() string {
	if s.calls >= len(s.responses) {
		return ""
	}
	response := s.responses[s.calls]
	s.calls++
	return response
}

func (s *queuedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.next(), nil
}

func (s *queuedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.next(), nil
}

func TestDraftEmailCarriesRenderedDraft(t *testing.T) {
	model := &queuedLLM{responses: []string{
		"The visitor asked about cloud migration timelines.",
		"Cloud Migration",
	}}
	pipeline := maildraft.NewPipeline(model, log.New(io.Discard, "", 0))
	svc := NewMailDraftService(pipeline, nil, time.Minute, noopLogger{})

	res, err := svc.DraftEmail(context.Background(), &dto.DraftRequest{
		Messages: []string{"We need help with cloud migration."},
		UserName: "Maria Lopez",
	})
	if err != nil {
		t.Fatalf("DraftEmail: %v", err)
	}

	if res.Email == "" {
		t.Fatal("Email is empty, want the rendered draft")
	}
	if res.Email != res.Body {
		t.Errorf("Email = %q, Body = %q, want the same rendered draft", res.Email, res.Body)
	}
	if !strings.Contains(res.Email, "Maria Lopez") {
		t.Errorf("Email = %q, want the visitor's name in the draft", res.Email)
	}

	payload, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	email, ok := fields["email"].(string)
	if !ok {
		t.Fatalf("draft response missing email field: %s", payload)
	}
	if email != res.Body {
		t.Errorf("email field = %q, want the rendered draft", email)
	}
}
