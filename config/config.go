package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultSecretsDir = "/run/secrets"

	minLLMTimeout = 15 * time.Second
	maxLLMTimeout = 20 * time.Second
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	StaticDir   string
	CORSOrigins []string
	LogLevel    string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// Redis configuration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string
	TokenTTL  time.Duration

	// LLM configuration
	DeepSeekAPIKey string
	DeepSeekAPIURL string
	DeepSeekModel  string
	LLMTimeout     time.Duration
	ChatRateLimit  int

	// Avatar storage
	AvatarStorage string
	S3BucketName  string
	AWSRegion     string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	src := newSource(env)

	cfg := &Config{
		Environment: env,
		ServerPort:  src.get("SERVER_PORT", "8080"),
		ServerHost:  src.get("SERVER_HOST", "0.0.0.0"),
		StaticDir:   src.get("STATIC_DIR", "static"),
		CORSOrigins: splitList(src.get("CORS_ORIGINS", "http://localhost:5173")),
		LogLevel:    src.get("LOG_LEVEL", "info"),

		DBDriver:   strings.ToLower(src.get("DB_DRIVER", "postgres")),
		DBHost:     src.get("DB_HOST", "localhost"),
		DBPort:     src.get("DB_PORT", ""),
		DBUser:     src.get("DB_USER", "lumi"),
		DBPassword: src.get("DB_PASSWORD", ""),
		DBName:     src.get("DB_NAME", "lumi"),
		DBSSLMode:  src.get("DB_SSL_MODE", "disable"),
		DBPath:     src.get("DB_PATH", "lumi.db"),

		RedisURL:      src.get("REDIS_URL", ""),
		RedisHost:     src.get("REDIS_HOST", ""),
		RedisPort:     src.get("REDIS_PORT", "6379"),
		RedisPassword: src.get("REDIS_PASSWORD", ""),

		JWTSecret: src.get("JWT_SECRET", ""),

		DeepSeekAPIKey: src.get("DEEPSEEK_API_KEY", ""),
		DeepSeekAPIURL: src.get("DEEPSEEK_API_URL", "https://api.deepseek.com/v1/chat/completions"),
		DeepSeekModel:  src.get("DEEPSEEK_MODEL", "deepseek-chat"),

		AvatarStorage: strings.ToLower(src.get("AVATAR_STORAGE", "local")),
		S3BucketName:  src.get("S3_BUCKET_NAME", "lumi-avatars"),
		AWSRegion:     src.get("AWS_REGION", "eu-central-1"),
	}

	if cfg.DeepSeekAPIKey == "" {
		key, err := readKeyFile(os.Getenv("DEEPSEEK_API_KEY_FILE"))
		if err != nil {
			return nil, err
		}
		cfg.DeepSeekAPIKey = key
	}

	if cfg.DBPort == "" {
		cfg.DBPort = defaultDBPort(cfg.DBDriver)
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(src.get("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.ChatRateLimit, err = strconv.Atoi(src.get("CHAT_RATE_LIMIT", "30")); err != nil {
		return nil, fmt.Errorf("invalid CHAT_RATE_LIMIT: %w", err)
	}
	if cfg.TokenTTL, err = time.ParseDuration(src.get("TOKEN_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	llmTimeout, err := time.ParseDuration(src.get("LLM_TIMEOUT", "20s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_TIMEOUT: %w", err)
	}
	cfg.LLMTimeout = clampDuration(llmTimeout, minLLMTimeout, maxLLMTimeout)

	if cfg.JWTSecret == "" && env != Production {
		cfg.JWTSecret = "lumi-development-secret-change-me"
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// RedisEnabled reports whether a Redis endpoint was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// LLMEnabled reports whether an LLM API key is available.
func (c *Config) LLMEnabled() bool {
	return c.DeepSeekAPIKey != ""
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// source resolves a key from the environment, then from Docker secrets.
// CI only ever reads the environment.
type source struct {
	env        Environment
	secretsDir string
}

func newSource(env Environment) source {
	dir := os.Getenv("SECRETS_DIR")
	if dir == "" {
		dir = defaultSecretsDir
	}
	return source{env: env, secretsDir: dir}
}

func (s source) get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	if s.env != CI {
		if v := readSecret(s.secretsDir, strings.ToLower(key)); v != "" {
			return v
		}
	}
	return def
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func readKeyFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read API key file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func defaultDBPort(driver string) string {
	if driver == "mysql" {
		return "3306"
	}
	return "5432"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}
