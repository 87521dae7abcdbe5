package main

import (
	"fmt"
	"log"
	"net/http"

	"docufill/internal/config"
	"docufill/internal/handler"
	"docufill/internal/llm"
	_ "docufill/internal/llm/groq"
	_ "docufill/internal/llm/openai"
	"docufill/internal/repository/memory"
	"docufill/internal/router"
	"docufill/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize session store
	sessionRepo := memory.NewSessionRepo(cfg.Session.TTL, cfg.Session.JanitorInterval)

	// Initialize model chain
	model, err := llm.NewFromConfig(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize chat model: %w", err)
	}

	// Initialize services
	tokenSvc := service.NewTokenService(cfg.Token, cfg.Session.TTL)
	sessionSvc := service.NewSessionService(sessionRepo, model, tokenSvc, cfg)
	chatSvc := service.NewChatService(sessionRepo, model, &cfg.LLM)

	// Initialize handlers
	sessionH := handler.NewSessionHandler(sessionSvc)
	chatH := handler.NewChatHandler(chatSvc)
	documentH := handler.NewDocumentHandler(sessionSvc)
	healthH := handler.NewHealthHandler(cfg)

	// Setup router
	r := router.Setup(tokenSvc, sessionH, chatH, documentH, healthH, &cfg.CORS)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
