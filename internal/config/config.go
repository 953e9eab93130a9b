package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Auth     AuthConfig
	Ai       AIConfig
	Render   RenderConfig
	Cache    CacheConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	ClientURL          string
	Environment        string
	LogFilePath        string
	WsLogFilePath      string
	CorsAllowedOrigins string
	// NatsURL and RedisURL are optional; empty disables the integration.
	NatsURL  string
	RedisURL string
}

func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type DatabaseConfig struct {
	Driver     string // "postgres" or "sqlite"
	Connection string
	LogLevel   string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.Email != ""
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	ResetTokenTTL time.Duration
}

type AIConfig struct {
	LLMProvider string // "openai" or "ollama"
	LLMModel    string
	BaseURL     string
	APIKey      string
	// DocumentTimeout bounds each per-document LLM call.
	DocumentTimeout time.Duration
	MaxTokens       int
}

// Configured reports whether an LLM can be called at all.
func (a AIConfig) Configured() bool {
	switch a.LLMProvider {
	case "ollama":
		return a.BaseURL != "" && a.LLMModel != ""
	case "openai":
		return a.APIKey != ""
	}
	return false
}

type RenderConfig struct {
	ChromeBin     string
	EngineEnabled bool
	EngineTimeout time.Duration
}

type CacheConfig struct {
	Driver string // "memory" or "redis"
	TTL    time.Duration
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			WsLogFilePath:      getEnv("WS_LOG_FILE_PATH", "logs/websocket.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			LogLevel:   getEnv("DB_LOG_LEVEL", "warn"),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Funeral Docs"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenTTL:      getEnvAsDuration("JWT_TTL", 7*24*time.Hour),
			ResetTokenTTL: getEnvAsDuration("RESET_TOKEN_TTL", time.Hour),
		},
		Ai: AIConfig{
			LLMProvider:     strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
			LLMModel:        getEnv("LLM_MODEL", "gpt-4o-mini"),
			BaseURL:         getEnv("LLM_BASE_URL", ""),
			APIKey:          getEnv("LLM_API_KEY", ""),
			DocumentTimeout: getEnvAsDuration("LLM_DOCUMENT_TIMEOUT", 15*time.Second),
			MaxTokens:       getEnvAsInt("LLM_MAX_TOKENS", 2000),
		},
		Render: RenderConfig{
			ChromeBin:     getEnv("CHROME_BIN", ""),
			EngineEnabled: getEnvAsBool("RENDER_ENGINE_ENABLED", false),
			EngineTimeout: getEnvAsDuration("RENDER_ENGINE_TIMEOUT", 30*time.Second),
		},
		Cache: CacheConfig{
			Driver: getEnv("CACHE_DRIVER", "memory"),
			TTL:    getEnvAsDuration("CACHE_TTL", 5*time.Minute),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "funeral-docs-be"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
