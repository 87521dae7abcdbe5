package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"docufill/internal/config"
	"docufill/internal/doctemplate"
	"docufill/internal/domain"
	"docufill/internal/llm"
	"docufill/internal/port"
)

// SessionUploadInput is the DTO for session creation requests.
type SessionUploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
	// APIKey is the per-session model key entered in the UI, used when no
	// key is configured in the environment.
	APIKey string
}

// CreatedSession is the result of a successful upload.
type CreatedSession struct {
	Session   *domain.Session
	Token     string
	ExpiresAt time.Time
}

// SessionService defines the session lifecycle contract: upload and scan,
// inspect, render, discard.
type SessionService interface {
	Create(ctx context.Context, input SessionUploadInput) (*CreatedSession, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Render(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	Preview(ctx context.Context, id uuid.UUID) ([]string, error)
}

type sessionService struct {
	repo   port.SessionRepository
	model  port.ChatModel
	tokens TokenService
	cfg    *config.Config
}

// NewSessionService creates a new SessionService implementation.
func NewSessionService(
	repo port.SessionRepository,
	model port.ChatModel,
	tokens TokenService,
	cfg *config.Config,
) SessionService {
	return &sessionService{repo: repo, model: model, tokens: tokens, cfg: cfg}
}

func (s *sessionService) Create(ctx context.Context, input SessionUploadInput) (*CreatedSession, error) {
	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.Session.MaxUploadMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	data, err := io.ReadAll(input.File)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	// A .docx is a zip container; check the magic bytes before parsing.
	if len(data) < 4 || string(data[:4]) != "PK\x03\x04" {
		return nil, domain.ErrUnsupportedFileType
	}

	// Resolve the model API key: configured key first, UI-supplied key as
	// fallback. Without either, every later turn would fail, so reject now.
	if s.cfg.LLM.Primary.APIKey == "" && input.APIKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	tpl, err := doctemplate.Open(data)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tpl.Close() }()

	found := doctemplate.Scan(tpl.Paragraphs(), s.cfg.Session.ContextWindow)
	if len(found) == 0 {
		return nil, domain.ErrNoPlaceholders
	}

	placeholders := make([]domain.Placeholder, 0, len(found))
	for _, f := range found {
		placeholders = append(placeholders, domain.Placeholder{
			Token:   f.Token,
			Context: f.Context,
		})
	}

	now := time.Now()
	session := &domain.Session{
		ID:            uuid.New(),
		DocumentName:  input.Header.Filename,
		DocumentBytes: data,
		Placeholders:  placeholders,
		Status:        domain.SessionStatusCollecting,
		APIKey:        input.APIKey,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.annotate(ctx, session, found); err != nil {
		return nil, err
	}

	s.repo.Save(session)

	token, expiresAt, err := s.tokens.Issue(session.ID)
	if err != nil {
		s.repo.Delete(session.ID)
		return nil, err
	}

	return &CreatedSession{Session: session, Token: token, ExpiresAt: expiresAt}, nil
}

// annotationEntry mirrors one element of the model's annotation array.
type annotationEntry struct {
	Placeholder string `json:"placeholder"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// annotate asks the model to infer a type label, description, and example
// value for every detected placeholder.
func (s *sessionService) annotate(ctx context.Context, session *domain.Session, found []doctemplate.Found) error {
	contexts := make([]llm.TokenContext, 0, len(found))
	for _, f := range found {
		contexts = append(contexts, llm.TokenContext{Token: f.Token, Context: f.Context})
	}

	reply, err := s.model.Complete(ctx, port.ChatRequest{
		Messages: []port.Message{
			{Role: "user", Content: llm.BuildAnnotationPrompt(contexts)},
		},
		Temperature: s.cfg.LLM.Temperature,
		MaxTokens:   s.cfg.LLM.MaxTokens,
		APIKey:      session.APIKey,
	})
	if err != nil {
		return fmt.Errorf("%w: annotating placeholders: %w", domain.ErrModelCall, err)
	}

	raw, ok := llm.ExtractJSONArray(reply)
	if !ok {
		return fmt.Errorf("%w: no JSON array in annotation reply", domain.ErrModelCall)
	}

	var entries []annotationEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return fmt.Errorf("%w: parsing annotation reply: %w", domain.ErrModelCall, err)
	}

	for _, e := range entries {
		key := domain.NormalizeToken(e.Placeholder)
		if key == "" {
			continue
		}
		for i := range session.Placeholders {
			if strings.Contains(domain.NormalizeToken(session.Placeholders[i].Token), key) {
				session.Placeholders[i].Kind = e.Type
				session.Placeholders[i].Description = e.Description
				session.Placeholders[i].Example = e.Example
			}
		}
	}
	return nil
}

func (s *sessionService) Get(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	session, ok := s.repo.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *sessionService) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.repo.Get(id); !ok {
		return domain.ErrSessionNotFound
	}
	s.repo.Delete(id)
	return nil
}

// Render enforces the completion gate and produces the final document.
func (s *sessionService) Render(_ context.Context, id uuid.UUID) ([]byte, string, error) {
	session, ok := s.repo.Get(id)
	if !ok {
		return nil, "", domain.ErrSessionNotFound
	}
	if !session.IsComplete() {
		return nil, "", domain.ErrSessionIncomplete
	}

	tpl, err := doctemplate.Open(session.DocumentBytes)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = tpl.Close() }()

	rendered, err := tpl.Render(session.ValueMap())
	if err != nil {
		return nil, "", err
	}

	name := session.DocumentName
	if name == "" {
		name = "document.docx"
	}
	return rendered, "filled_" + name, nil
}

// previewParagraphLimit caps the preview at the document's opening paragraphs.
const previewParagraphLimit = 30

// Preview renders the completed document and returns the text of its first
// non-empty paragraphs, so the user can check the result before downloading.
// The same completion gate as Render applies.
func (s *sessionService) Preview(ctx context.Context, id uuid.UUID) ([]string, error) {
	rendered, _, err := s.Render(ctx, id)
	if err != nil {
		return nil, err
	}

	tpl, err := doctemplate.Open(rendered)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tpl.Close() }()

	var preview []string
	for _, p := range tpl.Paragraphs() {
		if strings.TrimSpace(p) == "" {
			continue
		}
		preview = append(preview, p)
		if len(preview) == previewParagraphLimit {
			break
		}
	}
	return preview, nil
}
