// CI review commentary: read the pull_request event from the runner,
// collect the changed diffs, and post one AI-written review comment.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/MaanyaBS/ai-code-review-bot/internal/config"
	"github.com/MaanyaBS/ai-code-review-bot/internal/llm"
	"github.com/MaanyaBS/ai-code-review-bot/internal/logging"
	"github.com/MaanyaBS/ai-code-review-bot/internal/review"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	logger, logCleanup := logging.Setup(cfg)
	defer logCleanup()
	slog.SetDefault(logger)

	llmClient := llm.NewOpenAIClient(cfg)
	if !llmClient.Configured() {
		slog.Error("OpenAI API key not configured, cannot generate review")
		os.Exit(1)
	}

	ctx := context.Background()
	commentator := review.NewCommentator(ctx, cfg, llmClient)
	if err := commentator.Run(ctx); err != nil {
		slog.Error("review failed", "error", err)
		os.Exit(1)
	}
}
