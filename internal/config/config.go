package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourusername/resumeiq-api/internal/storage"
)

type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database (optional; history falls back to memory)
	DatabaseURL string

	// Inference providers
	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string
	GroqAPIKey      string
	GroqModel       string
	GroqBaseURL     string
	ClaudeAPIKey    string
	ClaudeModel     string
	ClaudeBaseURL   string
	ProviderTimeout time.Duration
	Providers       []ProviderConfig

	// Job Feed
	RapidAPIKey string

	// Uploads
	UploadDir string
	R2        storage.R2Config

	// Events
	RabbitMQURL string

	// Rate Limiting
	RateLimitRPS int

	// CORS
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Real env takes precedence; a missing .env is fine in production.
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		GeminiModel:     getEnv("GEMINI_MODEL", ""),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", ""),
		GroqAPIKey:      getEnv("GROQ_API_KEY", ""),
		GroqModel:       getEnv("GROQ_MODEL", ""),
		GroqBaseURL:     getEnv("GROQ_BASE_URL", ""),
		ClaudeAPIKey:    getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:     getEnv("CLAUDE_MODEL", ""),
		ClaudeBaseURL:   getEnv("CLAUDE_BASE_URL", "https://api.anthropic.com"),
		ProviderTimeout: getEnvDuration("PROVIDER_TIMEOUT", 30*time.Second),
		RapidAPIKey:     getEnv("RAPIDAPI_KEY", ""),
		UploadDir:       getEnv("UPLOAD_DIR", "./uploads"),
		R2: storage.R2Config{
			AccountID: getEnv("R2_ACCOUNT_ID", ""),
			Bucket:    getEnv("R2_BUCKET", ""),
			AccessKey: getEnv("R2_ACCESS_KEY", ""),
			SecretKey: getEnv("R2_SECRET_KEY", ""),
			PublicURL: getEnv("R2_PUBLIC_URL", ""),
		},
		RabbitMQURL:    getEnv("RABBITMQ_URL", ""),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 10),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}

	if cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be positive, got %d", cfg.RateLimitRPS)
	}

	providers := DefaultProviders(cfg.ProviderTimeout)
	if path := getEnv("PROVIDERS_FILE", ""); path != "" {
		p, err := LoadProviders(path, cfg.ProviderTimeout)
		if err != nil {
			return nil, err
		}
		providers = p
	}
	cfg.Providers = providers

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, v := range strings.Split(val, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
