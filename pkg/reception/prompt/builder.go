package prompt

import (
	"strings"
)

// FallbackSentence must be returned verbatim by the model when the supplied
// context does not contain the facts needed to answer.
const FallbackSentence = "I don't have specific information about that in my current knowledge base. However, this is something our team can help you with! Would you like me to connect you with someone who can provide more detailed information? Please share your name and contact, and click Draft to get in touch with our team."

// Builder assembles the grounded system prompt for the receptionist.
type Builder struct {
	contextChunks []string
	sessionName   string
	query         string
}

// NewBuilder creates a new grounded prompt builder
func NewBuilder(contextChunks []string, sessionName string, query string) *Builder {
	return &Builder{
		contextChunks: contextChunks,
		sessionName:   sessionName,
		query:         query,
	}
}

// Build creates the full prompt: behavior rules, the retrieved context, the
// session name when known, and the user question.
func (b *Builder) Build() string {
	var prompt strings.Builder

	prompt.WriteString("You are a polite, professional virtual receptionist (company assistant) for our company.\n\n")

	prompt.WriteString("Behavior rules (VERY IMPORTANT):\n")
	prompt.WriteString("- Use only the information provided in the \"Context\" section below to answer customer questions about the company.\n")
	prompt.WriteString("- If the user's question is outside the company materials, or the context does not contain the necessary facts, reply exactly:\n")
	prompt.WriteString("  \"" + FallbackSentence + "\"\n")
	prompt.WriteString("- Do NOT invent facts. If uncertain, say you don't have that information in the documents.\n")
	prompt.WriteString("- Keep answers concise, factual, and helpful.\n")
	prompt.WriteString("- If the user introduced their name earlier in the session, greet them by name only when it is naturally required but not for every answer.\n")
	prompt.WriteString("- Give related emails from the documents if required or asked.\n\n")

	prompt.WriteString("Context:\n")
	if len(b.contextChunks) > 0 {
		prompt.WriteString(strings.Join(b.contextChunks, "\n\n"))
	}
	prompt.WriteString("\n\nRespond naturally and use the context above.\n")

	if b.sessionName != "" {
		prompt.WriteString("\nSession user name: " + b.sessionName + "\n")
	}

	prompt.WriteString("\nUser question: " + b.query + "\n\nAnswer:")

	return prompt.String()
}
