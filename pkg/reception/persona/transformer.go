package persona

import (
	"context"
	"log"
	"strings"

	"ai-receptionist-be/pkg/llm"
)

// Transformer restyles a finalized answer in a selected persona. Styling is
// best-effort: every failure path returns the original answer unchanged.
type Transformer struct {
	llmProvider llm.LLMProvider
	registry    *Registry
	logger      *log.Logger
}

// NewTransformer creates a new persona transformer
func NewTransformer(llmProvider llm.LLMProvider, registry *Registry, logger *log.Logger) *Transformer {
	return &Transformer{
		llmProvider: llmProvider,
		registry:    registry,
		logger:      logger,
	}
}

// Transform rewrites the answer in the persona's voice while keeping all
// factual content intact. An unknown or "normal" key is a no-op.
func (t *Transformer) Transform(ctx context.Context, answer, userInput, key string) string {
	if key == ModeNormal || key == "" {
		return answer
	}
	persona, ok := t.registry.Get(key)
	if !ok {
		return answer
	}

	response, err := t.llmProvider.Generate(ctx, t.buildPrompt(persona, answer, userInput))
	if err != nil {
		t.logger.Printf("[WARN] Persona injection failed for '%s': %v", key, err)
		return answer
	}

	styled := strings.TrimSpace(response)
	if styled == "" {
		return answer
	}
	return styled
}

func (t *Transformer) buildPrompt(p Persona, answer, userInput string) string {
	var prompt strings.Builder

	prompt.WriteString("You are " + p.Role + ".\n")
	prompt.WriteString("Your tone: " + p.Tone + "\n")
	prompt.WriteString("Your traits: " + strings.Join(p.Traits, ", ") + "\n")
	prompt.WriteString("Your background: " + p.Background + "\n")
	prompt.WriteString("Your quirks/habits: " + strings.Join(p.Quirks, ", ") + "\n\n")

	prompt.WriteString("User asked: \"" + userInput + "\"\n")
	prompt.WriteString("Your answer: \"" + answer + "\"\n\n")

	prompt.WriteString("Rewrite the answer to match your persona while keeping all the technical information intact.\n")
	prompt.WriteString("Make it engaging and memorable, but stay professional and on-brand.\n")
	prompt.WriteString("Keep it concise - don't add more than 1-2 sentences of personality flair.")

	return prompt.String()
}
