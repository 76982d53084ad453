// cmd/scoring-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"speech-scorer/internal/common/config"
	"speech-scorer/internal/common/database"
	"speech-scorer/internal/common/logger"
	"speech-scorer/internal/common/observability"
	"speech-scorer/internal/embedding"
	"speech-scorer/internal/rubric"
	"speech-scorer/internal/scoring"
	"speech-scorer/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	zapLog.Info("Starting scoring server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Rebuild the logger with configured level/format.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Embedding provider ---
	var embedder embedding.Provider
	client, err := embedding.NewClient(&embedding.Config{
		BaseURL:    cfg.Embedding.BaseURL,
		APIKey:     cfg.Embedding.APIKey,
		Model:      cfg.Embedding.Model,
		Timeout:    time.Duration(cfg.Embedding.Timeout) * time.Millisecond,
		MaxRetries: cfg.Embedding.MaxRetries,
		CacheSize:  cfg.Embedding.CacheSize,
	}, log)
	if err != nil {
		zapLog.Fatal("embedding client init failed", zap.Error(err))
	}
	embedder = client

	// --- Optional shared Redis embedding cache ---
	var redisClient *database.RedisClient
	if cfg.Cache.Redis.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Cache.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "Redis initialization")
		if err != nil {
			zapLog.Fatal("redis init failed", zap.Error(err))
		}
		defer redisClient.Close()

		embedder = embedding.NewRedisCache(embedder, redisClient, cfg.Embedding.Model,
			time.Duration(cfg.Cache.Redis.TTL)*time.Second, log)
		zapLog.Info("Redis embedding cache enabled", zap.String("address", cfg.Cache.Redis.Address))
	}

	// --- Rubric ---
	rubricProvider := rubric.Load(cfg.Rubric.File, log)

	// --- Scorer ---
	scorer := scoring.NewScorer(&scoring.Config{
		MinWords:       cfg.Scoring.MinWords,
		MaxWords:       cfg.Scoring.MaxWords,
		FuzzyThreshold: cfg.Scoring.FuzzyThreshold,
	}, embedder, rubricProvider, log)

	// --- HTTP server ---
	srv := server.New(cfg, scorer, rubricProvider, redisClient, obs, log)

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx,
		time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown error", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}
