package config

import (
	"errors"
	"fmt"
	"net/url"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const minProductionSecretLen = 32

// ValidateConfig checks the configuration and reports every problem at once.
func ValidateConfig(cfg *Config) error {
	var errs []error
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}

	switch cfg.DBDriver {
	case "postgres", "mysql":
		if cfg.DBHost == "" {
			add("DB_HOST", "is required for "+cfg.DBDriver)
		}
		if cfg.DBName == "" {
			add("DB_NAME", "is required for "+cfg.DBDriver)
		}
		if cfg.Environment.IsProduction() && cfg.DBPassword == "" {
			add("DB_PASSWORD", "is required in production")
		}
	case "sqlite":
		if cfg.DBPath == "" {
			add("DB_PATH", "is required for sqlite")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.JWTSecret == "" {
		add("JWT_SECRET", "is required")
	} else if cfg.Environment.IsProduction() && len(cfg.JWTSecret) < minProductionSecretLen {
		add("JWT_SECRET", fmt.Sprintf("must be at least %d bytes in production", minProductionSecretLen))
	}
	if cfg.TokenTTL <= 0 {
		add("TOKEN_TTL", "must be positive")
	}

	switch cfg.AvatarStorage {
	case "local":
		if cfg.StaticDir == "" {
			add("STATIC_DIR", "is required for local avatar storage")
		}
	case "s3":
		if cfg.S3BucketName == "" {
			add("S3_BUCKET_NAME", "is required for s3 avatar storage")
		}
	default:
		add("AVATAR_STORAGE", fmt.Sprintf("unsupported storage %q", cfg.AvatarStorage))
	}

	if cfg.RedisURL != "" {
		if _, err := url.Parse(cfg.RedisURL); err != nil {
			add("REDIS_URL", err.Error())
		}
	}
	if cfg.ChatRateLimit < 0 {
		add("CHAT_RATE_LIMIT", "must not be negative")
	}
	if cfg.DeepSeekAPIKey != "" && cfg.DeepSeekAPIURL == "" {
		add("DEEPSEEK_API_URL", "is required when an API key is set")
	}

	return errors.Join(errs...)
}
