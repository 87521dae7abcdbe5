package llm

import (
	"fmt"
	"strings"
)

// TokenContext pairs a detected placeholder token with the clause text
// surrounding it in the document.
type TokenContext struct {
	Token   string
	Context string
}

// BuildAnnotationPrompt returns the prompt that asks the model to classify
// each detected placeholder from its surrounding clause text.
func BuildAnnotationPrompt(tokens []TokenContext) string {
	var b strings.Builder
	b.WriteString(`You are a legal document analysis assistant. The following placeholders were detected in an uploaded legal document, each with the clause text surrounding it.

For EVERY placeholder, infer from its context:
- "type": a short data type label (e.g., "name", "date", "amount", "address", "percentage", "text")
- "description": one sentence explaining what the placeholder represents in this document
- "example": a plausible example value

Return ONLY a valid JSON array with no markdown formatting, no code fences, no explanation, just the raw JSON array. One element per placeholder, in the order given:
[{"placeholder": "", "type": "", "description": "", "example": ""}]

Placeholders and contexts:
`)
	for _, tc := range tokens {
		fmt.Fprintf(&b, "%s: %s\n", tc.Token, tc.Context)
	}
	return b.String()
}

// BuildFillSystemPrompt returns the system prompt for the conversational
// filling loop.
func BuildFillSystemPrompt() string {
	return `You are an AI legal assistant helping the user fill placeholders in a legal document.
You have access to the context around each placeholder (its clause text) so you can interpret meaning.
Maintain a JSON mapping of placeholder to value as you chat.
Provide a natural reply, confirm updates, and suggest if something looks like a date, amount, name, etc.
Decide which unfilled placeholder to ask about next and ask for it.
Always include a JSON block of the updated mapping after each message.
When all placeholders are filled or the user says 'done', indicate readiness for final document generation.`
}

// BuildTurnPayload wraps a user chat message with the current mapping state,
// the list of still-missing tokens, and the per-token contexts.
func BuildTurnPayload(currentJSON string, missing []string, tokens []TokenContext, userMessage string) string {
	var ctx strings.Builder
	for _, tc := range tokens {
		fmt.Fprintf(&ctx, "%s: %s\n", tc.Token, tc.Context)
	}
	return fmt.Sprintf(
		"Current mapping: %s\n\nMissing: [%s]\n\nPlaceholder contexts:\n%s\nUser message: %s",
		currentJSON,
		strings.Join(missing, ", "),
		ctx.String(),
		userMessage,
	)
}
