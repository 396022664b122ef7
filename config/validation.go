package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable for the current environment
func ValidateConfig(cfg *Config) error {
	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	if cfg.MongoURI == "" {
		add("MONGODB_URI", "is required")
	}
	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}
	if cfg.LLMTimeout <= 0 {
		add("LLM_TIMEOUT", "must be positive")
	}
	if cfg.GenerationDeadline < cfg.LLMTimeout {
		add("GENERATION_DEADLINE", "must not be shorter than LLM_TIMEOUT")
	}
	if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil {
		add("DEFAULT_TIMEZONE", err.Error())
	}
	if cfg.GenerationRateLimit < 0 {
		add("GENERATION_RATE_LIMIT", "must not be negative")
	}

	switch cfg.AuthProvider {
	case AuthProviderFirebase:
		if cfg.FirebaseProjectID == "" {
			add("FIREBASE_PROJECT_ID", "is required for the firebase auth provider")
		}
		if cfg.FirebaseClientEmail == "" || cfg.FirebasePrivateKey == "" {
			add("FIREBASE_CLIENT_EMAIL", "service account credentials are required for the firebase auth provider")
		}
	case AuthProviderJWT:
		if cfg.JWTSecret == "" {
			add("JWT_SECRET", "is required for the jwt auth provider")
		}
		if cfg.Environment == Production {
			add("AUTH_PROVIDER", "jwt is not allowed in production")
		}
	default:
		add("AUTH_PROVIDER", fmt.Sprintf("unknown provider %q", cfg.AuthProvider))
	}

	if cfg.Environment == Production && cfg.LLMAPIKey == "" {
		add("LLM_API_KEY", "is required in production")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}
