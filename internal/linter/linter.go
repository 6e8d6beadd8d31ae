// Package linter invokes external static-analysis tools against a
// snippet and normalizes their output into findings. Python has real
// tool support (pylint and flake8); other languages get best-effort
// heuristic advisories.
package linter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/MaanyaBS/ai-code-review-bot/internal/config"
	"github.com/MaanyaBS/ai-code-review-bot/internal/domain"
	"github.com/MaanyaBS/ai-code-review-bot/internal/language"
	"github.com/MaanyaBS/ai-code-review-bot/internal/metrics"
	"github.com/MaanyaBS/ai-code-review-bot/internal/types"
)

// Tool is one external linter invocation against a file on disk.
type Tool interface {
	Name() string
	Run(ctx context.Context, path string) ([]domain.Finding, error)
}

// Analyzer runs every applicable tool for a snippet's language and
// collects the findings in tool output order.
type Analyzer struct {
	cfg   *config.Config
	tools []Tool
}

// NewAnalyzer creates an Analyzer with the python toolchain wired in.
func NewAnalyzer(cfg *config.Config) *Analyzer {
	return &Analyzer{
		cfg: cfg,
		tools: []Tool{
			&PylintTool{Timeout: cfg.Lint.Timeout},
			&Flake8Tool{Timeout: cfg.Lint.Timeout, MaxLineLength: cfg.Lint.MaxLineLength},
		},
	}
}

// Analyze lints a snippet. When the declared language disagrees with
// the detected one, the result is exactly one language_mismatch error
// finding and nothing else runs.
func (a *Analyzer) Analyze(ctx context.Context, snip domain.Snippet) []domain.Finding {
	if f, mismatch := language.CheckMismatch(snip.Code, snip.Language); mismatch {
		return []domain.Finding{f}
	}

	switch snip.Language {
	case domain.LangPython:
		return a.lintPython(ctx, snip.Code)
	case domain.LangJavaScript:
		return javascriptHeuristics(snip.Code)
	case domain.LangJava, domain.LangC, domain.LangCPP:
		return structureHeuristics(snip.Code, snip.Language)
	default:
		return []domain.Finding{{
			Tool:     domain.ToolUnsupported,
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("Language %q is not fully supported. Only basic analysis available.", snip.DeclaredLanguage()),
		}}
	}
}

// lintPython writes the snippet to a temp file and runs every tool
// against it. A tool failure is logged and recorded as an informational
// finding; it never aborts the other tools.
func (a *Analyzer) lintPython(ctx context.Context, code string) []domain.Finding {
	tmp, err := os.CreateTemp("", "review-*.py")
	if err != nil {
		slog.Error("create temp file failed", "error", err)
		return []domain.Finding{toolFailureFinding("linter", err)}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(code); err != nil {
		tmp.Close()
		slog.Error("write temp file failed", "error", err)
		return []domain.Finding{toolFailureFinding("linter", err)}
	}
	if err := tmp.Close(); err != nil {
		slog.Error("close temp file failed", "error", err)
		return []domain.Finding{toolFailureFinding("linter", err)}
	}

	var findings []domain.Finding
	for _, tool := range a.tools {
		results, err := tool.Run(ctx, tmp.Name())
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				metrics.LintToolRuns.WithLabelValues(tool.Name(), "timeout").Inc()
				slog.Warn("lint tool timed out", "tool", tool.Name())
				findings = append(findings, domain.Finding{
					Tool:     tool.Name(),
					Severity: domain.SeverityError,
					Message:  fmt.Sprintf("%s analysis timed out", tool.Name()),
				})
				continue
			}
			metrics.LintToolRuns.WithLabelValues(tool.Name(), "error").Inc()
			slog.Warn("lint tool failed", "tool", tool.Name(), "error", err)
			findings = append(findings, toolFailureFinding(tool.Name(), err))
			continue
		}
		metrics.LintToolRuns.WithLabelValues(tool.Name(), "ok").Inc()
		findings = append(findings, results...)
	}
	return findings
}

// toolFailureFinding records a tool invocation failure as an
// informational finding so partial results stay visible to the caller.
func toolFailureFinding(tool string, err error) domain.Finding {
	return domain.Finding{
		Tool:     tool,
		Severity: domain.SeverityInfo,
		Message:  fmt.Sprintf("%s did not run: %v", tool, err),
	}
}

// runTool executes an external linter with a bounded timeout and
// returns its stdout. Linters exit non-zero when they find issues, so a
// non-zero exit with output is treated as success.
func runTool(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", context.DeadlineExceeded
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && stdout.Len() > 0 {
			return stdout.String(), nil
		}
		return "", types.NewToolError(name, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String())))
	}
	return stdout.String(), nil
}
