package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	CORS    CORSConfig
	LLM     LLMConfig
	Session SessionConfig
	Token   TokenConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LLMProviderConfig holds settings for a single chat-model provider.
type LLMProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// LLMConfig holds chat-model settings with primary/secondary provider support.
type LLMConfig struct {
	Primary     LLMProviderConfig `mapstructure:"primary"`
	Secondary   LLMProviderConfig `mapstructure:"secondary"`
	Temperature float64           `mapstructure:"temperature"`
	MaxTokens   int               `mapstructure:"max_tokens"`
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (l *LLMConfig) SecondaryConfig() *LLMProviderConfig {
	if l.Secondary.Provider != "" {
		return &l.Secondary
	}
	return nil
}

// SessionConfig holds session store and upload settings.
type SessionConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	JanitorInterval time.Duration `mapstructure:"janitor_interval"`
	MaxUploadMB     int64         `mapstructure:"max_upload_mb"`
	ContextWindow   int           `mapstructure:"context_window"`
}

// TokenConfig holds session-token signing settings.
type TokenConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// Load reads configuration from environment variables with the DOCUFILL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCUFILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// LLM defaults
	v.SetDefault("llm.primary.provider", "groq")
	v.SetDefault("llm.primary.api_key", "")
	v.SetDefault("llm.primary.default_model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.primary.timeout_secs", 60)
	v.SetDefault("llm.secondary.provider", "")
	v.SetDefault("llm.secondary.api_key", "")
	v.SetDefault("llm.secondary.default_model", "")
	v.SetDefault("llm.secondary.timeout_secs", 60)
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.max_tokens", 800)

	// Session defaults
	v.SetDefault("session.ttl", "2h")
	v.SetDefault("session.janitor_interval", "10m")
	v.SetDefault("session.max_upload_mb", 10)
	v.SetDefault("session.context_window", 1)

	// Token defaults
	v.SetDefault("token.secret", "change-me-in-production")
	v.SetDefault("token.issuer", "docufill")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "DOCUFILL_SERVER_PORT",
		"server.read_timeout":         "DOCUFILL_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "DOCUFILL_SERVER_WRITE_TIMEOUT",
		"server.environment":          "DOCUFILL_SERVER_ENVIRONMENT",
		"log.level":                   "DOCUFILL_LOG_LEVEL",
		"log.format":                  "DOCUFILL_LOG_FORMAT",
		"cors.allowed_origins":        "DOCUFILL_CORS_ALLOWED_ORIGINS",
		"llm.primary.provider":        "DOCUFILL_LLM_PRIMARY_PROVIDER",
		"llm.primary.api_key":         "DOCUFILL_LLM_PRIMARY_API_KEY",
		"llm.primary.default_model":   "DOCUFILL_LLM_PRIMARY_DEFAULT_MODEL",
		"llm.primary.timeout_secs":    "DOCUFILL_LLM_PRIMARY_TIMEOUT_SECS",
		"llm.secondary.provider":      "DOCUFILL_LLM_SECONDARY_PROVIDER",
		"llm.secondary.api_key":       "DOCUFILL_LLM_SECONDARY_API_KEY",
		"llm.secondary.default_model": "DOCUFILL_LLM_SECONDARY_DEFAULT_MODEL",
		"llm.secondary.timeout_secs":  "DOCUFILL_LLM_SECONDARY_TIMEOUT_SECS",
		"llm.temperature":             "DOCUFILL_LLM_TEMPERATURE",
		"llm.max_tokens":              "DOCUFILL_LLM_MAX_TOKENS",
		"session.ttl":                 "DOCUFILL_SESSION_TTL",
		"session.janitor_interval":    "DOCUFILL_SESSION_JANITOR_INTERVAL",
		"session.max_upload_mb":       "DOCUFILL_SESSION_MAX_UPLOAD_MB",
		"session.context_window":      "DOCUFILL_SESSION_CONTEXT_WINDOW",
		"token.secret":                "DOCUFILL_TOKEN_SECRET",
		"token.issuer":                "DOCUFILL_TOKEN_ISSUER",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCUFILL_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCUFILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.LLM = LLMConfig{
		Primary: LLMProviderConfig{
			Provider:     v.GetString("llm.primary.provider"),
			APIKey:       v.GetString("llm.primary.api_key"),
			DefaultModel: v.GetString("llm.primary.default_model"),
			TimeoutSecs:  v.GetInt("llm.primary.timeout_secs"),
		},
		Secondary: LLMProviderConfig{
			Provider:     v.GetString("llm.secondary.provider"),
			APIKey:       v.GetString("llm.secondary.api_key"),
			DefaultModel: v.GetString("llm.secondary.default_model"),
			TimeoutSecs:  v.GetInt("llm.secondary.timeout_secs"),
		},
		Temperature: v.GetFloat64("llm.temperature"),
		MaxTokens:   v.GetInt("llm.max_tokens"),
	}

	cfg.Session = SessionConfig{
		TTL:             v.GetDuration("session.ttl"),
		JanitorInterval: v.GetDuration("session.janitor_interval"),
		MaxUploadMB:     v.GetInt64("session.max_upload_mb"),
		ContextWindow:   v.GetInt("session.context_window"),
	}

	cfg.Token = TokenConfig{
		Secret: v.GetString("token.secret"),
		Issuer: v.GetString("token.issuer"),
	}

	return cfg, nil
}
