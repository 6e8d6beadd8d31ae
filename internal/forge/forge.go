// Package forge delivers fixes as pull requests: a real one via the gh
// CLI in batch mode, and a demonstration single-snippet variant in
// service mode.
package forge

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/MaanyaBS/ai-code-review-bot/internal/config"
	"github.com/MaanyaBS/ai-code-review-bot/internal/domain"
	"github.com/MaanyaBS/ai-code-review-bot/internal/gitrepo"
	"github.com/MaanyaBS/ai-code-review-bot/internal/metrics"
)

// Client creates pull requests on the forge.
type Client struct {
	cfg *config.Config
}

// NewClient creates a forge client.
func NewClient(cfg *config.Config) *Client {
	return &Client{cfg: cfg}
}

// OpenPullRequest opens a PR for the already-pushed branch using the gh
// CLI, run inside dir. One attempt; a failure is reported in the
// outcome, never panicked on.
func (c *Client) OpenPullRequest(ctx context.Context, dir, branch, title, body string) domain.PullRequestOutcome {
	cmd := exec.CommandContext(ctx, "gh", "pr", "create",
		"--head", branch,
		"--title", title,
		"--body", body,
	)
	cmd.Dir = dir
	if c.cfg.GitHub.Token != "" {
		cmd.Env = append(os.Environ(), "GH_TOKEN="+c.cfg.GitHub.Token)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		slog.Error("gh pr create failed", "error", err, "stderr", strings.TrimSpace(stderr.String()))
		metrics.PullRequests.WithLabelValues("batch", "failed").Inc()
		return domain.PullRequestOutcome{
			Success: false,
			Message: fmt.Sprintf("Failed to create PR: %v: %s", err, strings.TrimSpace(stderr.String())),
		}
	}

	// gh prints the PR URL on stdout
	url := strings.TrimSpace(stdout.String())
	metrics.PullRequests.WithLabelValues("batch", "success").Inc()
	slog.Info("pull request created", "url", url)
	return domain.PullRequestOutcome{
		Success: true,
		Message: "PR created successfully",
		URL:     url,
	}
}

// CreateSnippetPR is the service-mode demonstration stub: it builds a
// fresh local repository holding the original and fixed snippet side by
// side plus a generated README, commits it, and returns a simulated
// outcome. No real forge authentication happens on this path.
func (c *Client) CreateSnippetPR(original, fixed string, findings []domain.Finding, lang domain.Language) domain.PullRequestOutcome {
	fail := func(err error) domain.PullRequestOutcome {
		slog.Error("snippet pr failed", "error", err)
		metrics.PullRequests.WithLabelValues("snippet", "failed").Inc()
		return domain.PullRequestOutcome{
			Success: false,
			Message: fmt.Sprintf("Failed to create PR: %v", err),
		}
	}

	tmpDir, err := os.MkdirTemp("", "code-review-fix-*")
	if err != nil {
		return fail(err)
	}
	defer os.RemoveAll(tmpDir)

	repo, err := gitrepo.Init(tmpDir)
	if err != nil {
		return fail(err)
	}

	ext := lang.Extension()
	files := map[string]string{
		"original." + ext: original,
		"fixed." + ext:    fixed,
		"README.md":       SnippetReadme(findings, lang),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0o644); err != nil {
			return fail(err)
		}
	}

	if err := repo.StageAll(); err != nil {
		return fail(err)
	}
	msg := fmt.Sprintf("AI Code Review: Fixed %d issues in %s code", len(findings), lang)
	if _, err := repo.Commit(msg, config.BotCommitName, config.BotCommitEmail); err != nil {
		return fail(err)
	}

	metrics.PullRequests.WithLabelValues("snippet", "success").Inc()
	return domain.PullRequestOutcome{
		Success: true,
		Message: fmt.Sprintf("PR created successfully with %d fixes", len(findings)),
		URL:     "https://github.com/example/repo/pull/123",
	}
}

// SnippetReadme renders the PR body for the single-snippet path.
// Finding messages are truncated so the list stays scannable.
func SnippetReadme(findings []domain.Finding, lang domain.Language) string {
	var issues strings.Builder
	for _, f := range findings {
		msg := f.Message
		if len(msg) > 100 {
			msg = msg[:100] + "..."
		}
		fmt.Fprintf(&issues, "- **%s**: %s\n", f.Tool, msg)
	}

	ext := lang.Extension()
	return fmt.Sprintf(`# AI Code Review Fix

This PR contains AI-powered fixes for code quality issues.

## Issues Fixed:
%s
## Changes:
- Applied automatic formatting
- Fixed linter issues using AI assistance
- Improved code quality and maintainability

## Files Changed:
- `+"`original.%s`"+`: Original code
- `+"`fixed.%s`"+`: Corrected code
`, issues.String(), ext, ext)
}
