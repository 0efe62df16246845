package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
	LLM    LLMConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr        string
	CORSOrigins []string
}

// DataConfig points at the canonical drug table
type DataConfig struct {
	Path string
}

// LLMConfig holds explanation-adapter configuration. An empty APIKey
// selects the disabled adapter at startup.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	addr := getEnv("PORT", "8000")
	if !strings.HasPrefix(addr, ":") {
		addr = ":" + addr
	}
	return &Config{
		Server: ServerConfig{
			Addr:        addr,
			CORSOrigins: splitOrigins(getEnv("CORS_ORIGINS", "*")),
		},
		Data: DataConfig{
			Path: getEnv("DRUG_DATA_PATH", "data/processed/drug_interactions_clean.csv"),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 20*time.Second),
		},
	}
}

// Validate checks startup requirements. The data path must exist before
// the service starts; LLM credentials are optional.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return ConfigError("DRUG_DATA_PATH is required", ErrInvalidInput)
	}
	if _, err := os.Stat(c.Data.Path); err != nil {
		return ConfigError("drug interaction table not found at "+c.Data.Path, err)
	}
	return nil
}

// splitOrigins parses CORS_ORIGINS: "*" means any origin, otherwise a
// comma-separated allowlist.
func splitOrigins(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" || v == "*" {
		return []string{"*"}
	}
	var out []string
	for _, o := range strings.Split(v, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
