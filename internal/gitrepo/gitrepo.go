// Package gitrepo wraps the git operations the delivery adapter needs:
// init, branch, stage, commit, push.
package gitrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// Repo is a working copy the delivery adapter operates on.
type Repo struct {
	repo *git.Repository
	dir  string
}

// Init creates a fresh repository in dir.
func Init(dir string) (*Repo, error) {
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return nil, fmt.Errorf("git init: %w", err)
	}
	return &Repo{repo: repo, dir: dir}, nil
}

// Open opens an existing repository rooted at dir.
func Open(dir string) (*Repo, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("git open %s: %w", dir, err)
	}
	return &Repo{repo: repo, dir: dir}, nil
}

// Dir returns the working directory of the repository.
func (r *Repo) Dir() string {
	return r.dir
}

// CheckoutNewBranch creates branch name at HEAD and switches to it.
// Keep is required: the branch points at HEAD, and the uncommitted
// fixes sitting in the worktree must survive the switch. Without it
// go-git refuses to check out over unstaged changes.
func (r *Repo) CheckoutNewBranch(name string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree: %w", err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
		Keep:   true,
	}); err != nil {
		return fmt.Errorf("checkout %s: %w", name, err)
	}
	return nil
}

// StageAll stages every change in the working tree.
func (r *Repo) StageAll() error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree: %w", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("stage: %w", err)
	}
	return nil
}

// Commit records the staged changes under the given author identity and
// returns the commit hash.
func (r *Repo) Commit(message, name, email string) (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("worktree: %w", err)
	}
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  name,
			Email: email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return hash.String(), nil
}

// Push publishes branch to the named remote using token auth. A single
// attempt; the caller decides what a failure means.
func (r *Repo) Push(ctx context.Context, remote, branch, token string) error {
	refSpec := gitconfig.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
	opts := &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []gitconfig.RefSpec{refSpec},
	}
	if token != "" {
		opts.Auth = &githttp.BasicAuth{Username: "x-access-token", Password: token}
	}
	if err := r.repo.PushContext(ctx, opts); err != nil {
		return fmt.Errorf("push %s to %s: %w", branch, remote, err)
	}
	return nil
}
