package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MaanyaBS/ai-code-review-bot/internal/config"
	"github.com/MaanyaBS/ai-code-review-bot/internal/domain"
	"github.com/MaanyaBS/ai-code-review-bot/internal/gitrepo"
)

// fakePipe reports one finding per file and optionally rewrites the code.
type fakePipe struct {
	rewrite bool
}

func (p *fakePipe) Run(ctx context.Context, snip domain.Snippet) domain.PipelineResult {
	result := domain.PipelineResult{
		Original: snip.Code,
		Fixed:    snip.Code,
		Findings: []domain.Finding{{Tool: domain.ToolFlake8, Message: "E225", Severity: domain.SeverityWarning}},
	}
	if p.rewrite {
		result.Fixed = "# reviewed\n" + snip.Code
	}
	return result
}

type fakeOpener struct {
	calls int
}

func (f *fakeOpener) OpenPullRequest(ctx context.Context, dir, branch, title, body string) domain.PullRequestOutcome {
	f.calls++
	return domain.PullRequestOutcome{Success: true, URL: "https://example.invalid/pr/1"}
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(root, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRun_WalksOnlyEligibleFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app.py":                "x=1\n",
		"web/index.js":          "var x = 1;\n",
		"README.md":             "# readme\n",
		"node_modules/dep.js":   "var dep = 1;\n",
		".hidden/secret.py":     "y=2\n",
		"__pycache__/cached.py": "z=3\n",
	})

	forge := &fakeOpener{}
	r := NewRunner(&config.Config{}, &fakePipe{}, forge)

	results, err := r.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var paths []string
	for _, res := range results {
		paths = append(paths, strings.TrimPrefix(res.Path, root+string(os.PathSeparator)))
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 processed files, got %v", paths)
	}
	for _, p := range paths {
		if p != "app.py" && p != filepath.Join("web", "index.js") {
			t.Errorf("unexpected file processed: %s", p)
		}
	}
}

func TestRun_NoChangesSkipsDelivery(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"app.py": "x=1\n"})

	forge := &fakeOpener{}
	r := NewRunner(&config.Config{}, &fakePipe{rewrite: false}, forge)

	results, err := r.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Changed {
		t.Error("expected no change recorded")
	}
	if forge.calls != 0 {
		t.Errorf("expected no PR attempt without changes, got %d", forge.calls)
	}
}

func TestRun_RewritesFilesInPlace(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"app.py": "x=1\n"})

	// Delivery fails because root is not a git repository; the in-place
	// rewrite must already have happened and the results stay valid.
	r := NewRunner(&config.Config{}, &fakePipe{rewrite: true}, &fakeOpener{})

	results, err := r.Run(context.Background(), root)
	if err == nil {
		t.Fatal("expected delivery error outside a git repository")
	}
	if !strings.Contains(err.Error(), "delivery aborted") {
		t.Errorf("expected delivery aborted error, got %v", err)
	}
	if len(results) != 1 || !results[0].Changed {
		t.Fatalf("expected per-file results preserved, got %+v", results)
	}

	data, readErr := os.ReadFile(filepath.Join(root, "app.py"))
	if readErr != nil {
		t.Fatal(readErr)
	}
	if string(data) != "# reviewed\nx=1\n" {
		t.Errorf("expected rewritten file content, got %q", data)
	}
}

func TestRun_DeliveryBranchesOverDirtyWorktree(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"app.py": "x=1\n"})

	// A real repository with the file already tracked: the rewritten
	// file is an unstaged change when delivery branches off HEAD.
	repo, err := gitrepo.Init(root)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := repo.StageAll(); err != nil {
		t.Fatalf("stage: %v", err)
	}
	if _, err := repo.Commit("initial", "tester", "tester@example.invalid"); err != nil {
		t.Fatalf("commit: %v", err)
	}

	forge := &fakeOpener{}
	r := NewRunner(&config.Config{}, &fakePipe{rewrite: true}, forge)

	// Branch, stage, and commit must all succeed; the run fails only at
	// the push, since no remote is configured here.
	_, err = r.Run(context.Background(), root)
	if err == nil {
		t.Fatal("expected a push error without a configured remote")
	}
	if !strings.Contains(err.Error(), "push") {
		t.Errorf("expected failure at the push step, got %v", err)
	}
	if strings.Contains(err.Error(), "checkout") {
		t.Errorf("expected branch creation to succeed over the dirty worktree, got %v", err)
	}
	if forge.calls != 0 {
		t.Errorf("expected no PR attempt after a failed push, got %d", forge.calls)
	}
}

func TestSkipDir(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".git", true},
		{".hidden", true},
		{"node_modules", true},
		{"__pycache__", true},
		{"venv", true},
		{"vendor", true},
		{"src", false},
		{"internal", false},
	}

	for _, tt := range tests {
		if got := skipDir(tt.name); got != tt.want {
			t.Errorf("skipDir(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
