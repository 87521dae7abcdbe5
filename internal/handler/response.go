package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docufill/internal/domain"
	"docufill/internal/llm"
	"docufill/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var rlErr *llm.RateLimitError
	if errors.As(err, &rlErr) {
		return http.StatusTooManyRequests, "MODEL_RATE_LIMITED", "model service is rate limited; try again shortly"
	}

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "session not found or expired"
	case errors.Is(err, domain.ErrSessionMismatch):
		return http.StatusForbidden, "SESSION_MISMATCH", "token does not grant access to this session"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; upload a .docx document"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrMalformedDocument):
		return http.StatusBadRequest, "MALFORMED_DOCUMENT", "document could not be read; is it a valid .docx?"
	case errors.Is(err, domain.ErrNoPlaceholders):
		return http.StatusUnprocessableEntity, "NO_PLACEHOLDERS", "no placeholders found; ensure placeholders are in [brackets]"
	case errors.Is(err, domain.ErrMissingAPIKey):
		return http.StatusBadRequest, "MISSING_API_KEY", "model API key is not configured; provide one with the upload"
	case errors.Is(err, domain.ErrSessionIncomplete):
		return http.StatusConflict, "SESSION_INCOMPLETE", "not all placeholders are filled yet"
	case errors.Is(err, domain.ErrEmptyMessage):
		return http.StatusBadRequest, "EMPTY_MESSAGE", "message must not be empty"
	case errors.Is(err, domain.ErrModelCall):
		return http.StatusBadGateway, "MODEL_CALL_FAILED", "model service call failed; try again"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		log.Printf("[%s] internal error: %v", middleware.GetRequestID(c), err)
	}
	RespondError(c, status, code, msg)
}

// extractSessionID returns the session ID from the path, verifying it against
// the authenticated token. Returns false if an error response was written.
func extractSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid session id")
		return uuid.Nil, false
	}

	tokenID, ok := middleware.GetSessionID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing session context")
		return uuid.Nil, false
	}
	if tokenID != id {
		status, code, msg := MapDomainError(domain.ErrSessionMismatch)
		RespondError(c, status, code, msg)
		return uuid.Nil, false
	}

	return id, true
}
