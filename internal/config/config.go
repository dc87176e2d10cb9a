package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBackend         = "gemini"
	defaultTemperature     = 0.7
	defaultLogLevel        = "info"
	defaultWorkDir         = "./coding"
	defaultDialogueTimeout = 120 * time.Second
)

// Config carries the environment-driven settings for one assistant process.
type Config struct {
	Backend     string
	Model       string
	Temperature float64
	APIKey      string
	OllamaHost  string

	Debug    bool
	LogLevel string
	WorkDir  string

	// Upper bound on a single dialogue round. A hung provider otherwise
	// blocks the whole task cycle.
	DialogueTimeout time.Duration
}

// Load reads configuration from the environment. The API credential is
// validated here so a misconfigured process dies at startup, not mid-task.
func Load() (*Config, error) {
	cfg := &Config{
		Backend:         strings.ToLower(strings.TrimSpace(getEnv("DEVCREW_BACKEND", defaultBackend))),
		Model:           strings.TrimSpace(os.Getenv("DEVCREW_MODEL")),
		Temperature:     defaultTemperature,
		APIKey:          os.Getenv("GEMINI_API_KEY"),
		OllamaHost:      os.Getenv("OLLAMA_HOST"),
		LogLevel:        getEnv("DEVCREW_LOG_LEVEL", defaultLogLevel),
		WorkDir:         getEnv("DEVCREW_WORK_DIR", defaultWorkDir),
		DialogueTimeout: defaultDialogueTimeout,
	}

	if raw := os.Getenv("DEVCREW_TEMPERATURE"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid DEVCREW_TEMPERATURE %q: %w", raw, err)
		}
		cfg.Temperature = t
	}
	if raw := os.Getenv("DEVCREW_DEBUG"); raw != "" {
		cfg.Debug = strings.EqualFold(strings.TrimSpace(raw), "true")
	}
	if raw := os.Getenv("DEVCREW_DIALOGUE_TIMEOUT"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid DEVCREW_DIALOGUE_TIMEOUT %q: %w", raw, err)
		}
		cfg.DialogueTimeout = time.Duration(secs) * time.Second
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case "gemini":
		if c.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY not found in environment variables")
		}
	case "ollama":
		// Local backend, no credential required.
	default:
		return fmt.Errorf("unsupported LLM backend: %s", c.Backend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
