package chat

import (
	"fmt"
	"strings"

	"github.com/jobportal-labs/ragchat/internal/domain"
)

// FallbackAnswer is returned when retrieval finds nothing or the generator
// cannot produce a grounded answer.
const FallbackAnswer = "I'm sorry, I don't see that information in the portal."

const systemInstruction = "You are the assistant for a job portal. " +
	"Answer the question using only the numbered context snippets below. " +
	"If the context does not contain the answer, say so and briefly list " +
	"what information the context does cover."

// BuildPrompt formats the generator prompt: instruction, numbered snippets
// in retrieval order, then the question with an answer cue.
func BuildPrompt(question string, snippets []domain.Snippet) string {
	var b strings.Builder
	b.WriteString(systemInstruction)
	b.WriteString("\n\nContext:\n")
	for i, s := range snippets {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Text)
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\nAnswer:")
	return b.String()
}

// cleanAnswer strips a verbatim prompt echo from the completion and trims
// surrounding whitespace. Some hosted models return the full text including
// the prompt.
func cleanAnswer(prompt, raw string) string {
	return strings.TrimSpace(strings.TrimPrefix(raw, prompt))
}
