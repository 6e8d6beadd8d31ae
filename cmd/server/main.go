package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MaanyaBS/ai-code-review-bot/internal/config"
	"github.com/MaanyaBS/ai-code-review-bot/internal/fixer"
	"github.com/MaanyaBS/ai-code-review-bot/internal/forge"
	"github.com/MaanyaBS/ai-code-review-bot/internal/formatter"
	"github.com/MaanyaBS/ai-code-review-bot/internal/linter"
	"github.com/MaanyaBS/ai-code-review-bot/internal/llm"
	"github.com/MaanyaBS/ai-code-review-bot/internal/logging"
	"github.com/MaanyaBS/ai-code-review-bot/internal/pipeline"
	"github.com/MaanyaBS/ai-code-review-bot/internal/server"
)

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, logCleanup := logging.Setup(cfg)
	defer logCleanup()
	slog.SetDefault(logger)

	if !cfg.OpenAIConfigured() {
		slog.Warn("no OpenAI API key configured, AI fixing disabled")
	}

	// Wire the pipeline from its adapters. Each is an explicitly
	// constructed dependency so it can be swapped in tests.
	llmClient := llm.NewOpenAIClient(cfg)
	analyzer := linter.NewAnalyzer(cfg)
	pipe := pipeline.New(analyzer, formatter.New(cfg), fixer.New(llmClient))
	forgeClient := forge.NewClient(cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.New(cfg, analyzer, pipe, forgeClient).Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server start failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("server stopping")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown forced", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
