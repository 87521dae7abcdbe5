package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"docufill/internal/domain"
	"docufill/internal/service"
)

// SessionHandler handles session lifecycle endpoints.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// SessionView is the API representation of a session's filling state.
type SessionView struct {
	ID           string               `json:"id"`
	DocumentName string               `json:"document_name"`
	Status       domain.SessionStatus `json:"status"`
	Placeholders []domain.Placeholder `json:"placeholders"`
	Filled       int                  `json:"filled"`
	Total        int                  `json:"total"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// CreateSessionResponse is returned on upload: the session state plus the
// bearer token scoping all further requests to it.
type CreateSessionResponse struct {
	Session   SessionView `json:"session"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func toSessionView(s *domain.Session) SessionView {
	return SessionView{
		ID:           s.ID.String(),
		DocumentName: s.DocumentName,
		Status:       s.Status,
		Placeholders: s.Placeholders,
		Filled:       s.FilledCount(),
		Total:        len(s.Placeholders),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// Create handles POST /api/v1/sessions
// @Summary Upload a document and start a filling session
// @Description Upload a .docx with [bracketed] placeholders; detects and annotates them
// @Tags sessions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document to fill (.docx)"
// @Param api_key formData string false "Model API key (fallback when none is configured server-side)"
// @Success 201 {object} APIResponse{data=CreateSessionResponse} "Session created"
// @Failure 400 {object} APIResponse "Missing file, unsupported type, or missing API key"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 422 {object} APIResponse "No placeholders detected"
// @Failure 502 {object} APIResponse "Model call failed"
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	input := service.SessionUploadInput{
		File:   file,
		Header: header,
		APIKey: c.PostForm("api_key"),
	}

	created, err := h.sessionService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, CreateSessionResponse{
		Session:   toSessionView(created.Session),
		Token:     created.Token,
		ExpiresAt: created.ExpiresAt,
	})
}

// Get handles GET /api/v1/sessions/:id
// @Summary Get session state
// @Tags sessions
// @Produce json
// @Success 200 {object} APIResponse{data=SessionView} "Session state"
// @Failure 404 {object} APIResponse "Session not found or expired"
// @Security BearerAuth
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := extractSessionID(c)
	if !ok {
		return
	}

	session, err := h.sessionService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, toSessionView(session))
}

// Delete handles DELETE /api/v1/sessions/:id
// @Summary Discard a session
// @Tags sessions
// @Produce json
// @Success 200 {object} APIResponse "Session deleted"
// @Failure 404 {object} APIResponse "Session not found or expired"
// @Security BearerAuth
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := extractSessionID(c)
	if !ok {
		return
	}

	if err := h.sessionService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}
