package domain

// SessionStatus tracks where a filling session is in its lifecycle.
type SessionStatus string

const (
	// SessionStatusCollecting means at least one placeholder is still unfilled.
	SessionStatusCollecting SessionStatus = "collecting"
	// SessionStatusReady means every placeholder is filled and the final
	// document may be generated.
	SessionStatusReady SessionStatus = "ready"
)

// MessageRole identifies the author of a chat message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// AllowedExtensions maps accepted upload extensions to a short type label.
var AllowedExtensions = map[string]string{
	"docx": "docx",
}
