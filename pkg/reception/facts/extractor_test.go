package facts

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"ai-receptionist-be/pkg/llm"
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

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestExtractContact(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "email",
			text: "you can reach me at jane.doe@example.com anytime",
			want: "jane.doe@example.com",
		},
		{
			name: "phone number",
			text: "call me on 5551234567 please",
			want: "5551234567",
		},
		{
			name: "phone with plus one prefix",
			text: "my number is +15551234567",
			want: "+15551234567",
		},
		{
			name: "email wins when it comes first",
			text: "a@b.co or 5551234567",
			want: "a@b.co",
		},
		{
			name: "no contact",
			text: "what services do you offer?",
			want: "",
		},
		{
			name: "too short phone ignored",
			text: "my lucky number is 12345678",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractContact(tt.text); got != tt.want {
				t.Errorf("ExtractContact(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		validator string // stub answer to the yes/no validation call
		want      string
	}{
		{
			name:      "my name is single token",
			text:      "Hello, my name is maria",
			validator: "yes",
			want:      "Maria",
		},
		{
			name:      "two word name",
			text:      "Hi, I'm Maria Lopez and I need pricing info",
			validator: "yes",
			want:      "Maria Lopez",
		},
		{
			name:      "this is pattern",
			text:      "Good morning, this is priya",
			validator: "yes",
			want:      "Priya",
		},
		{
			name:      "validator rejects candidate",
			text:      "my name is running",
			validator: "no",
			want:      "",
		},
		{
			name:      "no pattern matches",
			text:      "what does the company do?",
			validator: "yes",
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(&stubLLM{response: tt.validator}, testLogger())
			got := e.Extract(context.Background(), tt.text)
			if got.Name != tt.want {
				t.Errorf("Extract(%q).Name = %q, want %q", tt.text, got.Name, tt.want)
			}
		})
	}
}

func TestExtractNameValidatorError(t *testing.T) {
	e := NewExtractor(&stubLLM{err: errors.New("provider down")}, testLogger())
	got := e.Extract(context.Background(), "my name is Maria")
	if got.Name != "" {
		t.Errorf("Name = %q, want empty on validator error", got.Name)
	}
}

func TestExtractNameFirstPatternWins(t *testing.T) {
	// "my name is" matches first; the validator rejects its candidate and no
	// later pattern may be consulted.
	e := NewExtractor(&stubLLM{response: "no"}, testLogger())
	got := e.Extract(context.Background(), "my name is nothing, but I'm Maria")
	if got.Name != "" {
		t.Errorf("Name = %q, want empty after first pattern was rejected", got.Name)
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"maria", "Maria"},
		{"maria lopez", "Maria Lopez"},
		{"JOHN", "John"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Capitalize(tt.in); got != tt.want {
			t.Errorf("Capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
