package facts

import (
	"context"
	"log"
	"regexp"
	"strings"

	"ai-receptionist-be/pkg/llm"
)

// Facts holds whatever personal details were found in one utterance.
type Facts struct {
	Name    string
	Contact string
}

// Name patterns are tried in priority order; the FIRST match wins and no
// further patterns are attempted. A name is one or two word tokens.
const nameToken = `([A-Za-z][A-Za-z\-']{1,40}(?:\s+[A-Za-z][A-Za-z\-']{1,40})?)\b`

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bmy name is\s+` + nameToken),
	regexp.MustCompile(`(?i)\bI[' ]?am\s+` + nameToken),
	regexp.MustCompile(`(?i)\bI'm\s+` + nameToken),
	regexp.MustCompile(`(?i)\bthis is\s+` + nameToken),
	regexp.MustCompile(`(?i)\bname is\s+` + nameToken),
	regexp.MustCompile(`(?i)\bname-\s*` + nameToken),
	regexp.MustCompile(`(?i)\bname:\s*` + nameToken),
	regexp.MustCompile(`(?i)\bmyself\s+` + nameToken),
	regexp.MustCompile(`(?i)\bname -\s+` + nameToken),
	regexp.MustCompile(`(?i)\bname :\s+` + nameToken),
}

// contactPattern matches an email address or a 9-15 digit phone number with
// an optional +1 prefix. The first match anywhere in the text wins.
var contactPattern = regexp.MustCompile(
	`(\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b|(?:\+?1?\d{9,15}))`,
)

// Extractor pulls a person name and a contact identifier out of free text.
// Name candidates are validated with one strict yes/no LLM call.
type Extractor struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

// NewExtractor creates a new fact extractor
func NewExtractor(llmProvider llm.LLMProvider, logger *log.Logger) *Extractor {
	return &Extractor{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Extract returns the facts found in the utterance. It never fails: on any
// extractor or validator error the corresponding field is simply empty.
func (e *Extractor) Extract(ctx context.Context, text string) Facts {
	return Facts{
		Name:    e.extractName(ctx, text),
		Contact: ExtractContact(text),
	}
}

// ExtractContact returns the first email or phone number in the text, or "".
func ExtractContact(text string) string {
	return contactPattern.FindString(text)
}

func (e *Extractor) extractName(ctx context.Context, text string) string {
	for _, p := range namePatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := Capitalize(strings.TrimSpace(m[1]))
		if e.isPersonName(ctx, candidate) {
			return candidate
		}
		// First matching pattern wins, even when the validator says no.
		return ""
	}
	return ""
}

// isPersonName asks the model a strict yes/no question. Only an exact "yes"
// accepts the candidate; any error rejects it.
func (e *Extractor) isPersonName(ctx context.Context, name string) bool {
	var prompt strings.Builder
	prompt.WriteString("You are a strict name validator.\n\n")
	prompt.WriteString("Input: \"" + name + "\"\n\n")
	prompt.WriteString("Task: Decide if this is a reasonable human name (person name), not a verb,\n")
	prompt.WriteString("adjective, common noun, or phrase.\n\n")
	prompt.WriteString("Answer with EXACTLY one word: \"yes\" or \"no\".")

	response, err := e.llmProvider.Generate(ctx, prompt.String(), llm.WithTemperature(0.0))
	if err != nil {
		e.logger.Printf("[WARN] Name validation failed: %v", err)
		return false
	}
	return strings.ToLower(strings.TrimSpace(response)) == "yes"
}

// Capitalize title-cases each word of a name ("maria lopez" -> "Maria Lopez").
func Capitalize(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		if len(runes) > 0 {
			runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
