// Package batch walks a file tree, applies the fix pipeline per file,
// and delivers the combined result as a single pull request.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MaanyaBS/ai-code-review-bot/internal/config"
	"github.com/MaanyaBS/ai-code-review-bot/internal/domain"
	"github.com/MaanyaBS/ai-code-review-bot/internal/gitrepo"
)

// PullRequestOpener opens the PR for an already-pushed branch.
type PullRequestOpener interface {
	OpenPullRequest(ctx context.Context, dir, branch, title, body string) domain.PullRequestOutcome
}

// PipelineRunner runs the fix flow for one snippet.
type PipelineRunner interface {
	Run(ctx context.Context, snip domain.Snippet) domain.PipelineResult
}

// FileResult records what the pipeline did to one file.
type FileResult struct {
	Path     string
	Findings int
	Changed  bool
	Err      error
}

// Runner applies the pipeline across a tree and delivers the changes.
type Runner struct {
	cfg   *config.Config
	pipe  PipelineRunner
	forge PullRequestOpener
}

// NewRunner creates a batch runner with explicitly injected dependencies.
func NewRunner(cfg *config.Config, pipe PipelineRunner, forge PullRequestOpener) *Runner {
	return &Runner{cfg: cfg, pipe: pipe, forge: forge}
}

// Run walks root, fixes every eligible source file in place, and, when
// anything changed, creates one branch, one commit, pushes it, and
// opens one pull request. A git/forge failure aborts only the delivery:
// the per-file results remain valid and are still reported.
func (r *Runner) Run(ctx context.Context, root string) ([]FileResult, error) {
	results := r.fixTree(ctx, root)

	var changed, findings int
	for _, res := range results {
		if res.Changed {
			changed++
		}
		findings += res.Findings
	}

	slog.Info("batch run finished", "files", len(results), "changed", changed, "findings", findings)
	if changed == 0 {
		return results, nil
	}

	if err := r.deliver(ctx, root, changed, findings); err != nil {
		return results, fmt.Errorf("delivery aborted: %w", err)
	}
	return results, nil
}

// fixTree runs the pipeline for each eligible file, writing fixed
// content back in place. Per-file failures are logged and skipped.
func (r *Runner) fixTree(ctx context.Context, root string) []FileResult {
	var results []FileResult

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("walk error", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		lang, ok := domain.LanguageForPath(path)
		if !ok {
			return nil
		}

		res := r.fixFile(ctx, path, lang)
		results = append(results, res)
		if res.Err != nil {
			slog.Warn("file skipped", "path", path, "error", res.Err)
		} else {
			slog.Info("file processed", "path", path, "findings", res.Findings, "changed", res.Changed)
		}
		return nil
	})
	if err != nil {
		slog.Warn("walk aborted", "error", err)
	}

	return results
}

func (r *Runner) fixFile(ctx context.Context, path string, lang domain.Language) FileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: err}
	}

	result := r.pipe.Run(ctx, domain.Snippet{Code: string(data), Language: lang})
	res := FileResult{Path: path, Findings: len(result.Findings), Changed: result.Changed()}
	if result.FixErr != nil {
		slog.Warn("ai fix unavailable for file", "path", path, "error", result.FixErr)
	}

	if res.Changed {
		if err := os.WriteFile(path, []byte(result.Fixed), 0o644); err != nil {
			return FileResult{Path: path, Findings: res.Findings, Err: err}
		}
	}
	return res
}

// deliver creates the shared branch, commits everything, pushes, and
// opens the pull request.
func (r *Runner) deliver(ctx context.Context, root string, changed, findings int) error {
	repo, err := gitrepo.Open(root)
	if err != nil {
		return err
	}

	branch := fmt.Sprintf("ai-code-review-fixes-%d", time.Now().Unix())
	if err := repo.CheckoutNewBranch(branch); err != nil {
		return err
	}
	if err := repo.StageAll(); err != nil {
		return err
	}

	msg := fmt.Sprintf("Fix %d issues across %d files", findings, changed)
	if _, err := repo.Commit(msg, config.BotCommitName, config.BotCommitEmail); err != nil {
		return err
	}
	if err := repo.Push(ctx, r.cfg.GitHub.Remote, branch, r.cfg.GitHub.Token); err != nil {
		return err
	}

	title := fmt.Sprintf("AI code review fixes (%d files)", changed)
	body := prBody(changed, findings)
	outcome := r.forge.OpenPullRequest(ctx, root, branch, title, body)
	if !outcome.Success {
		return fmt.Errorf("open pull request: %s", outcome.Message)
	}

	slog.Info("batch delivery completed", "branch", branch, "url", outcome.URL)
	return nil
}

func prBody(changed, findings int) string {
	var b strings.Builder
	b.WriteString("## AI Code Review Fixes\n\n")
	fmt.Fprintf(&b, "Automated fixes for %d linter findings across %d files.\n\n", findings, changed)
	b.WriteString("Each file went through lint, auto-format, and (where configured) an AI fixing pass.\n")
	return b.String()
}

// skipDir reports whether a directory is excluded from the walk: hidden
// directories and well-known cache/dependency directories.
func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, skip := range config.SkipDirs {
		if name == skip {
			return true
		}
	}
	return false
}
