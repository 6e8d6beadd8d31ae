// Package review implements the CI-triggered commentary tool: read a
// pull-request event payload, fetch the changed-file diffs, ask the
// model for one holistic review comment, and post it back.
//
// This flow shares no state with the fix pipeline.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/go-github/v47/github"
	"golang.org/x/oauth2"

	"github.com/MaanyaBS/ai-code-review-bot/internal/config"
	"github.com/MaanyaBS/ai-code-review-bot/internal/llm"
	"github.com/MaanyaBS/ai-code-review-bot/internal/types"
)

const reviewSystemPrompt = "You are an experienced software engineer performing a thorough but constructive code review."

// codeExtensions limits the diffs embedded in the prompt to source
// files. Docs, lockfiles and generated assets add noise, not signal.
var codeExtensions = map[string]bool{
	".py": true, ".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".java": true, ".c": true, ".h": true, ".cpp": true, ".cc": true, ".hpp": true,
	".go": true, ".rb": true, ".rs": true, ".kt": true, ".cs": true,
}

// ChangedFile is one diff entry included in the review prompt.
type ChangedFile struct {
	Path  string
	Patch string
}

// Commentator posts one model-generated review comment per invocation.
type Commentator struct {
	cfg    *config.Config
	llm    llm.Client
	gh     *github.Client
	loadEv func(string) (Event, error)
}

// NewCommentator creates a Commentator authenticated with the forge token.
func NewCommentator(ctx context.Context, cfg *config.Config, client llm.Client) *Commentator {
	var gh *github.Client
	if cfg.GitHub.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHub.Token})
		gh = github.NewClient(oauth2.NewClient(ctx, ts))
	} else {
		gh = github.NewClient(nil)
	}
	return &Commentator{cfg: cfg, llm: client, gh: gh, loadEv: LoadEvent}
}

// Run executes the whole flow once. Every external call is attempted
// exactly once; any failure aborts with an error for the caller to
// report via the process exit code.
func (c *Commentator) Run(ctx context.Context) error {
	event, err := c.loadEv(c.cfg.GitHub.EventPath)
	if err != nil {
		return err
	}
	slog.Info("reviewing pull request", "repo", event.Owner+"/"+event.Repo, "number", event.Number)

	files, err := c.changedFiles(ctx, event)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		slog.Info("no reviewable code changes, skipping comment")
		return nil
	}

	comment, err := c.llm.Complete(ctx, reviewSystemPrompt, BuildReviewPrompt(event, files))
	if err != nil {
		return err
	}

	_, _, err = c.gh.Issues.CreateComment(ctx, event.Owner, event.Repo, event.Number,
		&github.IssueComment{Body: github.String(comment)})
	if err != nil {
		return types.NewTransportError("post review comment", err)
	}

	slog.Info("review comment posted", "number", event.Number, "files", len(files))
	return nil
}

// changedFiles fetches the PR's changed files, keeping only code files,
// capped at the configured file count with each diff capped in characters.
func (c *Commentator) changedFiles(ctx context.Context, event Event) ([]ChangedFile, error) {
	opts := &github.ListOptions{PerPage: 100}
	ghFiles, _, err := c.gh.PullRequests.ListFiles(ctx, event.Owner, event.Repo, event.Number, opts)
	if err != nil {
		return nil, types.NewTransportError("list pull request files", err)
	}

	var files []ChangedFile
	for _, f := range ghFiles {
		if len(files) >= c.cfg.Review.MaxFiles {
			break
		}
		if !IsCodeFile(f.GetFilename()) || f.GetPatch() == "" {
			continue
		}
		files = append(files, ChangedFile{
			Path:  f.GetFilename(),
			Patch: capPatch(f.GetPatch(), c.cfg.Review.MaxPatchChars),
		})
	}
	return files, nil
}

// IsCodeFile reports whether a changed file's diff belongs in the prompt.
func IsCodeFile(path string) bool {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return false
	}
	return codeExtensions[strings.ToLower(path[i:])]
}

func capPatch(patch string, max int) string {
	if max <= 0 || len(patch) <= max {
		return patch
	}
	return patch[:max] + "\n... [diff truncated]"
}

// BuildReviewPrompt renders the single review request: PR title,
// description, and the concatenated capped diffs.
func BuildReviewPrompt(event Event, files []ChangedFile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Review the following pull request and write one concise review comment.\n\n")
	fmt.Fprintf(&b, "Title: %s\n", event.Title)
	if event.Body != "" {
		fmt.Fprintf(&b, "Description:\n%s\n", event.Body)
	}
	b.WriteString("\nChanged files:\n")
	for _, f := range files {
		fmt.Fprintf(&b, "\n--- %s ---\n%s\n", f.Path, f.Patch)
	}
	b.WriteString("\nComment on code quality, correctness, and maintainability. Be specific and actionable.")
	return b.String()
}
