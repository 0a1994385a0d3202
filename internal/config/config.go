package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds the settings shared by the API server.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	FrontendURL string
	LogLevel    string

	// Process-wide default keys, used when a user has no override.
	NewsAPIKey string
	AIAPIKey   string
	AIProvider string

	NewsAPIBaseURL string
	GeminiBaseURL  string

	SessionTTL time.Duration
}

// Load reads configuration from the environment and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       getEnvOrDefault("REDIS_URL", "localhost:6379"),
		FrontendURL:    os.Getenv("FRONTEND_URL"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		NewsAPIKey:     os.Getenv("NEWS_API_KEY"),
		AIAPIKey:       getEnvOrDefault("AI_API_KEY", os.Getenv("GEMINI_API_KEY")),
		AIProvider:     strings.ToLower(getEnvOrDefault("AI_PROVIDER", ProviderGemini)),
		NewsAPIBaseURL: getEnvOrDefault("NEWS_API_BASE_URL", "https://newsapi.org/v2"),
		GeminiBaseURL:  getEnvOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		SessionTTL:     getEnvOrDefaultDuration("SESSION_TTL", 30*24*time.Hour),
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return &ConfigError{Field: "DATABASE_URL", Message: "database connection string is required"}
	}
	switch c.AIProvider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
	default:
		return &ConfigError{Field: "AI_PROVIDER", Message: "must be one of gemini, openai, anthropic"}
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
