// Package formatter pipes source text through external auto-formatting
// tools. Only python has real formatter support; every other language
// is a no-op returning the input unchanged.
package formatter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/MaanyaBS/ai-code-review-bot/internal/config"
	"github.com/MaanyaBS/ai-code-review-bot/internal/domain"
)

// PyFormatter applies isort then autopep8 to python source. Both tools
// are idempotent, so formatting already-formatted code returns
// byte-identical output. A tool failure never raises to the caller: the
// input comes back unchanged and the cause is logged.
type PyFormatter struct {
	Timeout       time.Duration
	MaxLineLength int

	// Binary names, overridable in tests.
	IsortBin    string
	Autopep8Bin string
}

// New creates a PyFormatter from configuration.
func New(cfg *config.Config) *PyFormatter {
	return &PyFormatter{
		Timeout:       cfg.Lint.Timeout,
		MaxLineLength: cfg.Lint.MaxLineLength,
		IsortBin:      "isort",
		Autopep8Bin:   "autopep8",
	}
}

// Format reformats python source and returns every other language
// unchanged.
func (f *PyFormatter) Format(ctx context.Context, code string, lang domain.Language) string {
	if lang != domain.LangPython {
		return code
	}

	sorted, err := f.pipe(ctx, code, f.IsortBin, "-")
	if err != nil {
		slog.Warn("isort failed, keeping input", "error", err)
		return code
	}

	fixed, err := f.pipe(ctx, sorted, f.Autopep8Bin,
		fmt.Sprintf("--max-line-length=%d", f.MaxLineLength), "-")
	if err != nil {
		slog.Warn("autopep8 failed, keeping input", "error", err)
		return code
	}

	return fixed
}

// pipe feeds code to a tool on stdin and returns its stdout.
func (f *PyFormatter) pipe(ctx context.Context, code, name string, args ...string) (string, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(code)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
