package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"devcrew/internal/cli"
	"devcrew/internal/config"
	"devcrew/internal/llm_client"
	"devcrew/internal/logger"
)

func main() {
	// Optional; the environment itself may carry the settings.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Fatal Error: Invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Debug, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Fatal Error: Could not initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := llm_client.Init(llm_client.Config{
		Backend:     cfg.Backend,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		APIKey:      cfg.APIKey,
		OllamaHost:  cfg.OllamaHost,
	}); err != nil {
		log.Fatalf("Fatal Error: Could not initialize LLM client: %v", err)
	}
	zlog.Info("llm client ready",
		zap.String("backend", llm_client.ActiveBackend()),
		zap.String("default_model", llm_client.Active().DefaultModel()))

	cli.Execute(cfg, zlog)
}
