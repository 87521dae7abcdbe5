package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Placeholder is a bracket-delimited token detected in the uploaded document,
// e.g. "[Effective Date]". The raw token is its identity; the annotation
// fields are inferred by the model at upload time. Placeholders are created at
// scan time and never removed within a session.
type Placeholder struct {
	Token       string `json:"token"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Example     string `json:"example"`
	Context     string `json:"context"`
	Value       string `json:"value"`
	Filled      bool   `json:"filled"`
}

// ChatMessage is one entry in a session's append-only transcript.
type ChatMessage struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// Session holds all per-upload state: the original document bytes, the
// detected placeholders in document order, and the chat transcript. It lives
// only in process memory and expires with the store's TTL.
type Session struct {
	ID            uuid.UUID     `json:"id"`
	DocumentName  string        `json:"document_name"`
	DocumentBytes []byte        `json:"-"`
	Placeholders  []Placeholder `json:"placeholders"`
	Messages      []ChatMessage `json:"messages"`
	Status        SessionStatus `json:"status"`
	APIKey        string        `json:"-"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Clone returns a copy that can be mutated independently of the receiver.
// The placeholder and message slices are copied; the document bytes are
// shared, since they are written once at upload and never mutated after.
func (s *Session) Clone() *Session {
	c := *s
	c.Placeholders = append([]Placeholder(nil), s.Placeholders...)
	c.Messages = append([]ChatMessage(nil), s.Messages...)
	return &c
}

// NormalizeToken lowercases a token and strips spaces and surrounding
// brackets so loosely-written model keys like "effective date" match the
// document token "[Effective Date]".
func NormalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	return strings.Trim(s, "$[]")
}

// matchesToken reports whether a model-provided key refers to the placeholder
// token. The key matches when its normalized form is contained in the
// normalized token.
func matchesToken(key, token string) bool {
	nk := NormalizeToken(key)
	if nk == "" {
		return false
	}
	return strings.Contains(NormalizeToken(token), nk)
}

// SetValue assigns a value to the placeholder with the given raw token and
// maintains the filled-iff-non-empty invariant. Returns false if the token is
// unknown.
func (s *Session) SetValue(token, value string) bool {
	for i := range s.Placeholders {
		if s.Placeholders[i].Token == token {
			s.Placeholders[i].Value = value
			s.Placeholders[i].Filled = strings.TrimSpace(value) != ""
			return true
		}
	}
	return false
}

// ApplyValues merges a model-extracted key→value mapping into the session
// using fuzzy token matching. Returns the number of placeholders updated.
func (s *Session) ApplyValues(values map[string]string) int {
	updated := 0
	for key, value := range values {
		for i := range s.Placeholders {
			if matchesToken(key, s.Placeholders[i].Token) {
				s.Placeholders[i].Value = value
				s.Placeholders[i].Filled = strings.TrimSpace(value) != ""
				updated++
			}
		}
	}
	s.RefreshStatus()
	return updated
}

// AppendMessage appends to the transcript, stamping the message time.
func (s *Session) AppendMessage(role MessageRole, content string) ChatMessage {
	msg := ChatMessage{Role: role, Content: content, CreatedAt: time.Now()}
	s.Messages = append(s.Messages, msg)
	s.UpdatedAt = msg.CreatedAt
	return msg
}

// Missing returns the tokens whose value is still empty, in document order.
func (s *Session) Missing() []string {
	var missing []string
	for i := range s.Placeholders {
		if !s.Placeholders[i].Filled {
			missing = append(missing, s.Placeholders[i].Token)
		}
	}
	return missing
}

// FilledCount returns how many placeholders currently hold a value.
func (s *Session) FilledCount() int {
	n := 0
	for i := range s.Placeholders {
		if s.Placeholders[i].Filled {
			n++
		}
	}
	return n
}

// IsComplete is the completion gate: true iff every placeholder is filled.
// Final document generation is permitted only when this holds.
func (s *Session) IsComplete() bool {
	return len(s.Placeholders) > 0 && s.FilledCount() == len(s.Placeholders)
}

// ValueMap returns the token→value substitution mapping for rendering.
// Unfilled tokens are omitted.
func (s *Session) ValueMap() map[string]string {
	m := make(map[string]string, len(s.Placeholders))
	for i := range s.Placeholders {
		if s.Placeholders[i].Filled {
			m[s.Placeholders[i].Token] = s.Placeholders[i].Value
		}
	}
	return m
}

// RefreshStatus re-evaluates the completion gate and updates Status.
func (s *Session) RefreshStatus() {
	if s.IsComplete() {
		s.Status = SessionStatusReady
	} else {
		s.Status = SessionStatusCollecting
	}
}
