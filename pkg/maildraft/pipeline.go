package maildraft

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"ai-receptionist-be/pkg/llm"
)

const (
	// DefaultRecipient receives drafts when no address appears anywhere in
	// the conversation or its summary.
	DefaultRecipient = "team@argano.com"

	// DefaultTopic labels drafts when topic detection yields nothing.
	DefaultTopic = "General Inquiry"
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)

// Pipeline turns a full conversation transcript into a formatted email
// draft: summary, recipients, topics, subject, rendered template.
type Pipeline struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

// NewPipeline creates a new email drafting pipeline
func NewPipeline(llmProvider llm.LLMProvider, logger *log.Logger) *Pipeline {
	return &Pipeline{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Draft is the result of one pipeline run.
type Draft struct {
	Summary    string
	Recipients []string
	Topics     []string
	Subject    string
	Body       string // the final rendered draft text
}

// Run executes the whole pipeline. Summarization failure is fatal; every
// other step degrades to its documented fallback.
func (p *Pipeline) Run(ctx context.Context, conversation, userName, userContact string) (*Draft, error) {
	summary, err := p.Summarize(ctx, conversation)
	if err != nil {
		return nil, fmt.Errorf("summarization failed: %w", err)
	}

	recipients := dedupe(append(ExtractEmails(conversation), ExtractEmails(summary)...))
	if len(recipients) == 0 {
		recipients = []string{DefaultRecipient}
	}

	topics := p.DetectTopics(ctx, conversation)
	subject := BuildSubject(topics)

	return &Draft{
		Summary:    summary,
		Recipients: recipients,
		Topics:     topics,
		Subject:    subject,
		Body:       RenderDraft(summary, recipients, subject, userName, userContact),
	}, nil
}

// Summarize condenses the transcript in 4-5 sentences, retaining any email
// address it mentions. This is the only fatal step of the pipeline.
func (p *Pipeline) Summarize(ctx context.Context, conversation string) (string, error) {
	var prompt strings.Builder
	prompt.WriteString("Summarize the following chat conversation in 4-5 clear sentences. ")
	prompt.WriteString("If any email is mentioned, include it.\n\n")
	prompt.WriteString(conversation)
	prompt.WriteString("\n")

	response, err := p.llmProvider.Generate(ctx, prompt.String(), llm.WithTemperature(0.2))
	if err != nil {
		p.logger.Printf("[ERROR] Summarization failed: %v", err)
		return "", err
	}
	return strings.TrimSpace(response), nil
}

// ExtractEmails returns every address in the text, deduplicated in
// first-seen order, with trailing periods stripped.
func ExtractEmails(text string) []string {
	if text == "" {
		return nil
	}
	return dedupe(emailPattern.FindAllString(text, -1))
}

func dedupe(emails []string) []string {
	var unique []string
	seen := map[string]bool{}
	for _, email := range emails {
		clean := strings.TrimRight(email, ".")
		if clean == "" || seen[clean] {
			continue
		}
		unique = append(unique, clean)
		seen[clean] = true
	}
	return unique
}

// DetectTopics asks for a strict comma-separated label list. Any failure or
// empty result falls back to the default topic.
func (p *Pipeline) DetectTopics(ctx context.Context, conversation string) []string {
	var prompt strings.Builder
	prompt.WriteString("Identify the main topics discussed in this conversation. ")
	prompt.WriteString("Return ONLY a comma-separated list of short topic labels. ")
	prompt.WriteString("Do not include sentences, explanations, or extra text.\n\n")
	prompt.WriteString(conversation)
	prompt.WriteString("\n")

	response, err := p.llmProvider.Generate(ctx, prompt.String(), llm.WithTemperature(0.2))
	if err != nil {
		p.logger.Printf("[WARN] Topic detection failed: %v", err)
		return []string{DefaultTopic}
	}

	var topics []string
	for _, t := range strings.Split(response, ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	if len(topics) == 0 {
		return []string{DefaultTopic}
	}
	return topics
}

// BuildSubject derives the subject line from the topic list.
func BuildSubject(topics []string) string {
	switch len(topics) {
	case 0:
		return "User Query Summary"
	case 1:
		return topics[0] + " — User Query Summary"
	default:
		combined := strings.Join(topics[:len(topics)-1], ", ") + " & " + topics[len(topics)-1]
		return "User Query Summary related to " + combined
	}
}

// RenderDraft substitutes the pieces into the fixed draft template and trims
// surrounding whitespace.
func RenderDraft(summary string, recipients []string, subject, userName, userContact string) string {
	if userName == "" {
		userName = "Not provided"
	}
	if userContact == "" {
		userContact = "Not provided"
	}

	body := fmt.Sprintf(`
**Email Draft**

Subject: %s
To: %s



Dear Team,
From: %s

%s

Please proceed with the required assistance.
Contact: %s
Warm regards,
AI Support Bot
`, subject, strings.Join(recipients, ", "), userName, summary, userContact)

	return strings.TrimSpace(body)
}
