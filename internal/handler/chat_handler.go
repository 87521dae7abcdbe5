package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docufill/internal/domain"
	"docufill/internal/service"
)

// ChatHandler handles the conversational filling endpoints.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessageRequest is the body for one chat turn.
type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// TurnResponse is the result of one chat turn.
type TurnResponse struct {
	Reply   domain.ChatMessage `json:"reply"`
	Session SessionView        `json:"session"`
}

// SendMessage handles POST /api/v1/sessions/:id/messages
// @Summary Send a chat message
// @Description One conversational turn: the model extracts values from the message and picks the next field to ask about
// @Tags chat
// @Accept json
// @Produce json
// @Param body body SendMessageRequest true "User message"
// @Success 200 {object} APIResponse{data=TurnResponse} "Assistant reply and updated state"
// @Failure 400 {object} APIResponse "Empty message"
// @Failure 404 {object} APIResponse "Session not found or expired"
// @Failure 502 {object} APIResponse "Model call failed"
// @Security BearerAuth
// @Router /sessions/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	id, ok := extractSessionID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "message field is required")
		return
	}

	result, err := h.chatService.SendMessage(c.Request.Context(), id, req.Message)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, TurnResponse{
		Reply:   result.Reply,
		Session: toSessionView(result.Session),
	})
}

// Transcript handles GET /api/v1/sessions/:id/messages
// @Summary Get the chat transcript
// @Tags chat
// @Produce json
// @Success 200 {object} APIResponse{data=[]domain.ChatMessage} "Ordered transcript"
// @Failure 404 {object} APIResponse "Session not found or expired"
// @Security BearerAuth
// @Router /sessions/{id}/messages [get]
func (h *ChatHandler) Transcript(c *gin.Context) {
	id, ok := extractSessionID(c)
	if !ok {
		return
	}

	messages, err := h.chatService.Transcript(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, messages)
}
