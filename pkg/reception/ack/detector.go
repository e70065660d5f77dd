package ack

import (
	"context"
	"log"
	"strings"

	"ai-receptionist-be/pkg/llm"
)

// Detector classifies short follow-ups ("okay", "thanks", "nice") as
// acknowledgments so they do not trigger retrieval. It is only consulted for
// utterances that already classified as questions.
type Detector struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

// NewDetector creates a new acknowledgment detector
func NewDetector(llmProvider llm.LLMProvider, logger *log.Logger) *Detector {
	return &Detector{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// IsAcknowledgment returns true when the message is an acknowledgment,
// confirmation, agreement or compliment. On any failure it returns false so
// a real question is never silently dropped.
func (d *Detector) IsAcknowledgment(ctx context.Context, userInput string) bool {
	var prompt strings.Builder
	prompt.WriteString("Determine if this user message is an acknowledgment, confirmation, agreement or a compliment (like okay, got it, thanks, understood, that's impressive, nice, good etc).\n\n")
	prompt.WriteString("User message: \"" + userInput + "\"\n\n")
	prompt.WriteString("Respond with ONLY \"yes\" or \"no\".")

	response, err := d.llmProvider.Generate(ctx, prompt.String(), llm.WithTemperature(0.0))
	if err != nil {
		d.logger.Printf("[WARN] Acknowledgment check failed: %v", err)
		return false
	}

	return strings.Contains(strings.ToLower(strings.TrimSpace(response)), "yes")
}
