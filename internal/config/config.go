// Package config loads application configuration from an optional YAML
// file with environment variable overrides. Environment always wins.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	ListenAddr  string `yaml:"listen_addr"`
	Environment string `yaml:"environment"`
	EnableCORS  bool   `yaml:"enable_cors"`

	// Storage
	StorageBackend string `yaml:"storage_backend"` // "file" or "redis"
	ProjectsDir    string `yaml:"projects_dir"`
	PromptsDir     string `yaml:"prompts_dir"`
	RedisAddr      string `yaml:"redis_addr"`
	RedisPassword  string `yaml:"redis_password"`
	RedisDB        int    `yaml:"redis_db"`

	// Encryption at rest. Empty key disables the middleware.
	EncryptionKey string `yaml:"encryption_key"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Feature flags
	EnableMetrics bool `yaml:"enable_metrics"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		ListenAddr:     ":8080",
		Environment:    "development",
		EnableCORS:     true,
		StorageBackend: "file",
		ProjectsDir:    ".adkflow/projects",
		PromptsDir:     ".adkflow/prompts",
		RedisAddr:      "localhost:6379",
		LogLevel:       "info",
		EnableMetrics:  true,
	}
}

// Load builds the configuration: defaults, then the YAML file at path
// (if non-empty and present), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.ListenAddr = getEnv("ADKFLOW_LISTEN_ADDR", c.ListenAddr)
	c.Environment = getEnv("ADKFLOW_ENVIRONMENT", c.Environment)
	c.EnableCORS = getEnvBool("ADKFLOW_ENABLE_CORS", c.EnableCORS)
	c.StorageBackend = getEnv("ADKFLOW_STORAGE_BACKEND", c.StorageBackend)
	c.ProjectsDir = getEnv("ADKFLOW_PROJECTS_DIR", c.ProjectsDir)
	c.PromptsDir = getEnv("ADKFLOW_PROMPTS_DIR", c.PromptsDir)
	c.RedisAddr = getEnv("ADKFLOW_REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getEnv("ADKFLOW_REDIS_PASSWORD", c.RedisPassword)
	c.RedisDB = getEnvInt("ADKFLOW_REDIS_DB", c.RedisDB)
	c.EncryptionKey = getEnv("ADKFLOW_ENCRYPTION_KEY", c.EncryptionKey)
	c.LogLevel = getEnv("ADKFLOW_LOG_LEVEL", c.LogLevel)
	c.EnableMetrics = getEnvBool("ADKFLOW_ENABLE_METRICS", c.EnableMetrics)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case "file", "redis":
	default:
		return fmt.Errorf("unknown storage backend: %q", c.StorageBackend)
	}
	if k := c.EncryptionKey; k != "" && len(k) != 32 {
		return fmt.Errorf("encryption key must be exactly 32 bytes, got %d", len(k))
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v == "true" || v == "1" || v == "yes"
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
