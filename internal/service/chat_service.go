package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"docufill/internal/config"
	"docufill/internal/domain"
	"docufill/internal/llm"
	"docufill/internal/port"
)

// TurnResult is the outcome of one chat turn: the stored assistant reply and
// the session with its updated placeholder state.
type TurnResult struct {
	Reply   domain.ChatMessage
	Session *domain.Session
}

// ChatService drives the conversational filling loop.
type ChatService interface {
	SendMessage(ctx context.Context, sessionID uuid.UUID, message string) (*TurnResult, error)
	Transcript(ctx context.Context, sessionID uuid.UUID) ([]domain.ChatMessage, error)
}

type chatService struct {
	repo  port.SessionRepository
	model port.ChatModel
	cfg   *config.LLMConfig
}

// NewChatService creates a new ChatService implementation.
func NewChatService(repo port.SessionRepository, model port.ChatModel, cfg *config.LLMConfig) ChatService {
	return &chatService{repo: repo, model: model, cfg: cfg}
}

func (s *chatService) SendMessage(ctx context.Context, sessionID uuid.UUID, message string) (*TurnResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}

	session, ok := s.repo.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	// The user message goes into the transcript before the model call, so a
	// failed call leaves it in place for a manual retry.
	session.AppendMessage(domain.RoleUser, message)
	s.repo.Save(session)

	reply, err := s.model.Complete(ctx, s.buildRequest(session, message))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrModelCall, err)
	}

	if raw, ok := llm.ExtractJSONObject(reply); ok {
		if values, err := decodeMapping(raw); err == nil {
			session.ApplyValues(values)
		}
		// An unparseable block leaves the mapping untouched; the reply is
		// still shown and the user can restate the value.
	}

	// An explicit "done" re-checks the gate even when the reply carries no
	// mapping block.
	if strings.EqualFold(message, "done") {
		session.RefreshStatus()
	}

	if missing := session.Missing(); len(missing) > 0 {
		reply += "\n\nRemaining placeholders: " + strings.Join(missing, ", ")
	} else {
		reply += "\n\nAll placeholders filled. You can now generate your final document."
	}

	stored := session.AppendMessage(domain.RoleAssistant, reply)
	s.repo.Save(session)

	return &TurnResult{Reply: stored, Session: session}, nil
}

func (s *chatService) Transcript(_ context.Context, sessionID uuid.UUID) ([]domain.ChatMessage, error) {
	session, ok := s.repo.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session.Messages, nil
}

// buildRequest assembles the model request: system prompt, full transcript,
// then a payload wrapping the user message with mapping state and contexts.
func (s *chatService) buildRequest(session *domain.Session, message string) port.ChatRequest {
	messages := make([]port.Message, 0, len(session.Messages)+2)
	messages = append(messages, port.Message{Role: "system", Content: llm.BuildFillSystemPrompt()})
	for _, m := range session.Messages {
		messages = append(messages, port.Message{Role: string(m.Role), Content: m.Content})
	}

	current := make(map[string]string, len(session.Placeholders))
	contexts := make([]llm.TokenContext, 0, len(session.Placeholders))
	for i := range session.Placeholders {
		p := &session.Placeholders[i]
		current[p.Token] = p.Value
		contexts = append(contexts, llm.TokenContext{Token: p.Token, Context: p.Context})
	}
	currentJSON, _ := json.Marshal(current)

	messages = append(messages, port.Message{
		Role:    "user",
		Content: llm.BuildTurnPayload(string(currentJSON), session.Missing(), contexts, message),
	})

	return port.ChatRequest{
		Messages:    messages,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
		APIKey:      session.APIKey,
	}
}

// decodeMapping parses a model-emitted mapping block, stringifying non-string
// values so "2025" and 2025 land the same way.
func decodeMapping(raw string) (map[string]string, error) {
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(parsed))
	for k, v := range parsed {
		switch t := v.(type) {
		case string:
			values[k] = t
		case float64:
			values[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			values[k] = strconv.FormatBool(t)
		case nil:
			values[k] = ""
		default:
			b, err := json.Marshal(t)
			if err != nil {
				continue
			}
			values[k] = string(b)
		}
	}
	return values, nil
}
