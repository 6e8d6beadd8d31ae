// Package pipeline orchestrates the detect → lint → format → (AI-fix) →
// re-format flow applied to one snippet.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/MaanyaBS/ai-code-review-bot/internal/domain"
	"github.com/MaanyaBS/ai-code-review-bot/internal/metrics"
)

// Linter analyzes a snippet, including the language-mismatch guard.
type Linter interface {
	Analyze(ctx context.Context, snip domain.Snippet) []domain.Finding
}

// Formatter reformats source text, returning it unchanged on failure or
// for unsupported languages.
type Formatter interface {
	Format(ctx context.Context, code string, lang domain.Language) string
}

// Fixer requests an AI-generated fix. It returns the input unchanged
// alongside a non-nil error when unavailable or failing.
type Fixer interface {
	Configured() bool
	Fix(ctx context.Context, snip domain.Snippet, findings []domain.Finding) (string, error)
}

// Pipeline runs the fix flow for one snippet at a time. Each run owns
// its snippet state exclusively; the pipeline itself holds no per-run
// state and is safe to share.
type Pipeline struct {
	linter    Linter
	formatter Formatter
	fixer     Fixer
}

// New wires the pipeline from its three adapters. Dependencies are
// passed in explicitly so each can be swapped or mocked in tests.
func New(linter Linter, formatter Formatter, fixer Fixer) *Pipeline {
	return &Pipeline{linter: linter, formatter: formatter, fixer: fixer}
}

// Run executes the full flow: lint, and if anything was found, format,
// re-lint, optionally AI-fix once, and format the fixed output. There
// is no loop between fixing and re-linting: at most one AI attempt per
// run, and residual findings are reported, not re-fixed.
func (p *Pipeline) Run(ctx context.Context, snip domain.Snippet) domain.PipelineResult {
	start := time.Now()
	result := domain.PipelineResult{Original: snip.Code, Fixed: snip.Code}

	// DETECTING + LINTING
	result.Findings = p.linter.Analyze(ctx, snip)

	if domain.IsLanguageMismatch(result.Findings) {
		slog.Info("language mismatch, skipping analysis", "declared", snip.Language)
		metrics.PipelineDuration.WithLabelValues("mismatch").Observe(time.Since(start).Seconds())
		return result
	}

	if len(result.Findings) == 0 {
		slog.Info("code already clean", "language", snip.Language)
		metrics.PipelineDuration.WithLabelValues("clean").Observe(time.Since(start).Seconds())
		return result
	}

	// FORMATTING
	snip.Code = p.formatter.Format(ctx, snip.Code, snip.Language)
	result.Fixed = snip.Code

	// RELINTING
	result.Residual = p.linter.Analyze(ctx, snip)

	if len(result.Residual) == 0 || !p.fixer.Configured() {
		if len(result.Residual) > 0 {
			slog.Info("fixer not configured, returning formatted result",
				"residual", len(result.Residual))
		}
		metrics.PipelineDuration.WithLabelValues("formatted").Observe(time.Since(start).Seconds())
		return result
	}

	// AI_FIXING: a single attempt
	fixed, err := p.fixer.Fix(ctx, snip, result.Residual)
	if err != nil {
		result.FixErr = err
		metrics.PipelineDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return result
	}

	// FORMATTING_FINAL: model output is not guaranteed well-formatted
	result.Fixed = p.formatter.Format(ctx, fixed, snip.Language)

	slog.Info("pipeline completed", "language", snip.Language,
		"findings", len(result.Findings), "changed", result.Changed())
	metrics.PipelineDuration.WithLabelValues("fixed").Observe(time.Since(start).Seconds())
	return result
}
