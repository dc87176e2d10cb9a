package llm_client

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotInitialized = errors.New("llm client not initialized")

type Config struct {
	Backend     string
	Model       string
	Temperature float64
	APIKey      string
	OllamaHost  string
}

type Provider interface {
	Init(cfg Config) error
	DefaultModel() string
	Generate(ctx context.Context, prompt, model string) (string, error)
}

var (
	active   Provider
	activeID string
)

func Init(cfg Config) error {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = "gemini"
	}
	var p Provider
	switch backend {
	case "ollama":
		p = &ollamaProvider{}
		activeID = "ollama"
	case "gemini":
		p = &geminiProvider{}
		activeID = "gemini"
	default:
		return fmt.Errorf("unsupported LLM backend: %s", cfg.Backend)
	}
	if err := p.Init(cfg); err != nil {
		return err
	}
	active = p
	return nil
}

// Active returns the initialized provider, or nil before Init.
func Active() Provider {
	return active
}

// ActiveBackend returns the identifier of the initialized backend,
// or "" before Init.
func ActiveBackend() string {
	if active == nil {
		return ""
	}
	return activeID
}
