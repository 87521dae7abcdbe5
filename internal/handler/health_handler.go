package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docufill/internal/config"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
// The service can accept uploads without a configured key (the UI supplies
// one per session), so readiness only reports whether a server-side key is
// present.
func (h *HealthHandler) Readiness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"provider":    h.cfg.LLM.Primary.Provider,
		"api_key_set": h.cfg.LLM.Primary.APIKey != "",
	})
}
