package intent

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"ai-receptionist-be/pkg/llm"
)

// Intent constants
const (
	GreetingOnly = "GREETING_ONLY"
	Question     = "QUESTION"
)

// Result is the resolved classification of one utterance.
type Result struct {
	Intent       string `json:"intent"`        // GREETING_ONLY or QUESTION
	ResponseText string `json:"response_text"` // generated greeting when GREETING_ONLY, else empty
}

// Classifier decides whether an utterance is a pure greeting or an
// information request, using a single structured LLM call.
type Classifier struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

// NewClassifier creates a new intent classifier
func NewClassifier(llmProvider llm.LLMProvider, logger *log.Logger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Classify never fails: any call or parse error falls open to QUESTION so
// that classification failure can never block retrieval.
func (c *Classifier) Classify(ctx context.Context, userInput string, storedName string) *Result {
	prompt := c.buildPrompt(userInput, storedName)

	response, err := c.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		c.logger.Printf("[ERROR] Intent classification failed: %v", err)
		return c.fallback()
	}

	result, err := parseResult(response)
	if err != nil {
		c.logger.Printf("[WARN] Intent parsing failed, using fallback: %v", err)
		return c.fallback()
	}

	c.logger.Printf("[INTENT] Resolved: %s", result.Intent)
	return result
}

func (c *Classifier) buildPrompt(userInput, storedName string) string {
	var prompt strings.Builder

	prompt.WriteString("Analyze the user's message.\n")
	prompt.WriteString("User Input: \"" + userInput + "\"\n")
	if storedName != "" {
		prompt.WriteString("Context: User Name is \"" + storedName + "\".\n")
	} else {
		prompt.WriteString("Context: User Name is not known.\n")
	}
	prompt.WriteString("\n")
	prompt.WriteString("Classify into ONE category:\n")
	prompt.WriteString("1. GREETING_ONLY: User is ONLY greeting (e.g. \"Hello\", \"Hi\", \"Hey\", \"Wassup\") or is just identifying themselves. No questions asked.\n")
	prompt.WriteString("2. QUESTION: User is asking for information, even if they say hi or give a name first (e.g., \"Hi, what is AWS?\", \"Tell me about services\").\n")
	prompt.WriteString("\n")
	prompt.WriteString("If GREETING_ONLY, generate a warm greeting response. If they just identified themselves, greet them by name (nice to meet you) but do NOT offer any services.\n")
	prompt.WriteString("If QUESTION, set response_text to null.\n")
	prompt.WriteString("\n")
	prompt.WriteString("Respond with ONLY valid JSON:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"intent\": \"GREETING_ONLY\" | \"QUESTION\",\n")
	prompt.WriteString("  \"response_text\": \"your generated response if greeting, else null\"\n")
	prompt.WriteString("}")

	return prompt.String()
}

func (c *Classifier) fallback() *Result {
	return &Result{Intent: Question}
}

// parseResult treats the model output as untrusted: code fences are stripped,
// then the remainder must be strict JSON with a recognized intent.
func parseResult(response string) (*Result, error) {
	text := StripCodeFences(response)

	var raw struct {
		Intent       string  `json:"intent"`
		ResponseText *string `json:"response_text"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, err
	}

	result := &Result{Intent: strings.ToUpper(strings.TrimSpace(raw.Intent))}
	if raw.ResponseText != nil {
		result.ResponseText = *raw.ResponseText
	}

	if result.Intent != GreetingOnly && result.Intent != Question {
		return nil, &UnknownIntentError{Intent: result.Intent}
	}
	return result, nil
}

// UnknownIntentError reports an intent value outside the expected set.
type UnknownIntentError struct {
	Intent string
}

func (e *UnknownIntentError) Error() string {
	return "unknown intent: " + e.Intent
}

// StripCodeFences removes a leading and trailing triple-backtick line from
// model output that wrapped its JSON in a Markdown code block.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx != -1 {
			text = text[idx+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
	}
	if strings.HasSuffix(text, "```") {
		if idx := strings.LastIndex(text, "\n"); idx != -1 {
			text = text[:idx]
		} else {
			text = strings.TrimSuffix(text, "```")
		}
	}
	return strings.TrimSpace(text)
}
