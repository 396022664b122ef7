package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost string
	ServerPort string

	// MongoDB configuration
	MongoURI      string
	MongoDatabase string

	// Redis configuration (optional, enables rate limiting)
	RedisURL string

	// Completion API configuration
	LLMAPIKey string
	LLMAPIURL string
	LLMModel  string
	// LLMTimeout bounds a single completion call
	LLMTimeout time.Duration
	// GenerationDeadline bounds a whole generation request
	GenerationDeadline time.Duration

	// DefaultTimezone is used for week boundaries when a profile has none
	DefaultTimezone string

	// Auth configuration
	AuthProvider        string
	JWTSecret           string
	FirebaseProjectID   string
	FirebaseClientEmail string
	FirebasePrivateKey  string

	CORSAllowedOrigins []string

	// GenerationRateLimit is the number of generation requests allowed per user per hour
	GenerationRateLimit int

	LogLevel  string
	LogFormat string
}

const (
	AuthProviderFirebase = "firebase"
	AuthProviderJWT      = "jwt"

	defaultLLMAPIURL = "https://api.blackbox.ai/chat/completions"
	defaultLLMModel  = "blackboxai/anthropic/claude-sonnet-4.5"
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env == Development || env == Test {
		// A missing .env file is not an error outside production
		_ = godotenv.Load()
	}

	cfg := &Config{
		Environment:         env,
		ServerHost:          getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
		ServerPort:          getEnvOrDefault("SERVER_PORT", "8080"),
		MongoURI:            getEnvOrSecret("MONGODB_URI", "mongodb_uri"),
		MongoDatabase:       getEnvOrDefault("MONGODB_DATABASE", "vegan-diet-app"),
		RedisURL:            getEnvOrSecret("REDIS_URL", "redis_url"),
		LLMAPIKey:           getEnvOrSecret("LLM_API_KEY", "llm_api_key"),
		LLMAPIURL:           getEnvOrDefault("LLM_API_URL", defaultLLMAPIURL),
		LLMModel:            getEnvOrDefault("LLM_MODEL", defaultLLMModel),
		DefaultTimezone:     getEnvOrDefault("DEFAULT_TIMEZONE", "UTC"),
		AuthProvider:        strings.ToLower(getEnvOrDefault("AUTH_PROVIDER", AuthProviderFirebase)),
		JWTSecret:           getEnvOrSecret("JWT_SECRET", "jwt_secret"),
		FirebaseProjectID:   os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseClientEmail: os.Getenv("FIREBASE_CLIENT_EMAIL"),
		FirebasePrivateKey:  strings.ReplaceAll(getEnvOrSecret("FIREBASE_PRIVATE_KEY", "firebase_private_key"), `\n`, "\n"),
		CORSAllowedOrigins:  splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.LLMTimeout, err = getDuration("LLM_TIMEOUT", 8*time.Second); err != nil {
		return nil, err
	}
	if cfg.GenerationDeadline, err = getDuration("GENERATION_DEADLINE", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.GenerationRateLimit, err = getInt("GENERATION_RATE_LIMIT", 30); err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Location resolves DefaultTimezone, falling back to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrSecret prefers the environment variable and falls back to a Docker secret
func getEnvOrSecret(key, secret string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return readSecret(secret)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
