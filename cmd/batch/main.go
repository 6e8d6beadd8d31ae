// Batch mode: run the fix pipeline over every eligible source file
// under the current working directory and deliver the result as one
// pull request. Takes no flags; exit status reflects delivery failures.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/MaanyaBS/ai-code-review-bot/internal/batch"
	"github.com/MaanyaBS/ai-code-review-bot/internal/config"
	"github.com/MaanyaBS/ai-code-review-bot/internal/fixer"
	"github.com/MaanyaBS/ai-code-review-bot/internal/forge"
	"github.com/MaanyaBS/ai-code-review-bot/internal/formatter"
	"github.com/MaanyaBS/ai-code-review-bot/internal/linter"
	"github.com/MaanyaBS/ai-code-review-bot/internal/llm"
	"github.com/MaanyaBS/ai-code-review-bot/internal/logging"
	"github.com/MaanyaBS/ai-code-review-bot/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	logger, logCleanup := logging.Setup(cfg)
	defer logCleanup()
	slog.SetDefault(logger)

	root, err := os.Getwd()
	if err != nil {
		slog.Error("get working directory failed", "error", err)
		os.Exit(1)
	}

	llmClient := llm.NewOpenAIClient(cfg)
	pipe := pipeline.New(linter.NewAnalyzer(cfg), formatter.New(cfg), fixer.New(llmClient))
	runner := batch.NewRunner(cfg, pipe, forge.NewClient(cfg))

	results, err := runner.Run(context.Background(), root)
	for _, res := range results {
		if res.Err != nil {
			fmt.Printf("  %s: skipped (%v)\n", res.Path, res.Err)
			continue
		}
		fmt.Printf("  %s: %d findings, changed=%v\n", res.Path, res.Findings, res.Changed)
	}
	if err != nil {
		slog.Error("batch run failed", "error", err)
		os.Exit(1)
	}
}
