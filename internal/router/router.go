package router

import (
	"github.com/gin-gonic/gin"

	"docufill/internal/config"
	"docufill/internal/handler"
	"docufill/internal/middleware"
	"docufill/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	tokens service.TokenService,
	sessionH *handler.SessionHandler,
	chatH *handler.ChatHandler,
	documentH *handler.DocumentHandler,
	healthH *handler.HealthHandler,
	corsCfg *config.CORSConfig,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsCfg))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Upload is the entry point; it returns the session token.
	v1.POST("/sessions", sessionH.Create)

	// Everything else is scoped to one session by its bearer token.
	sessions := v1.Group("/sessions")
	sessions.Use(middleware.SessionAuth(tokens))
	sessions.GET("/:id", sessionH.Get)
	sessions.DELETE("/:id", sessionH.Delete)
	sessions.POST("/:id/messages", chatH.SendMessage)
	sessions.GET("/:id/messages", chatH.Transcript)
	sessions.GET("/:id/document", documentH.Download)
	sessions.GET("/:id/document/preview", documentH.Preview)
	sessions.GET("/:id/export/csv", documentH.ExportCSV)
	sessions.GET("/:id/export/xlsx", documentH.ExportXLSX)

	return r
}
