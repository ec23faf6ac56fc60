package main

import (
	"context"
	"time"

	"github.com/xaenox/spam-detector/internal/classifier"
	"github.com/xaenox/spam-detector/internal/server"
	"github.com/xaenox/spam-detector/internal/service"
	"github.com/xaenox/spam-detector/internal/storage"
	"github.com/xaenox/spam-detector/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(level string) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, _ := zapCfg.Build()
	return logger
}

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	logger = newLogger(cfg.Logging.Level)
	defer logger.Sync()

	// Initialize the artifact store
	var store storage.ArtifactStore
	switch cfg.Classifier.Backend {
	case "openai":
		logger.Info("Using LLM classifier backend", zap.String("model", cfg.OpenAI.Model))
		store = storage.NewStaticStore(classifier.NewLLMPipeline(
			cfg.OpenAI.APIKey,
			cfg.OpenAI.Model,
			cfg.OpenAI.MaxTokens,
			cfg.OpenAI.Temperature,
			logger,
		))
	default:
		logger.Info("Using trained artifact backend", zap.String("path", cfg.Model.Path))
		store = storage.NewFileStore(cfg.Model.Path, cfg.Model.MetricsPath, logger)
	}

	cache := storage.NewCache(store, logger)

	// Warm the cache at startup. A failure is tolerated: the service
	// starts anyway and the first prediction retries the load.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := cache.GetPipeline(ctx); err != nil {
		logger.Warn("Model failed to load at startup", zap.Error(err))
	}
	cancel()

	svc := service.New(cache, service.NewUsage(), server.Version, logger)

	e := server.BuildServer(svc, logger)
	logger.Info("Starting server", zap.String("address", cfg.Server.Address()))
	if err := e.Start(cfg.Server.Address()); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
