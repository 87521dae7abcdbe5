package port

import "context"

// Message is one turn in a chat-completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries the data for a single chat-completion call.
type ChatRequest struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
	// APIKey, when non-empty, overrides the provider's configured key for
	// this request (the per-session key entered in the UI).
	APIKey string
}

// ChatModel abstracts a hosted chat-completion model service.
type ChatModel interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}
