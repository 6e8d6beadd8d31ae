package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/MaanyaBS/ai-code-review-bot/internal/domain"
	"github.com/MaanyaBS/ai-code-review-bot/internal/types"
)

// fakeLinter returns scripted findings: first call gets initial, later
// calls get residual.
type fakeLinter struct {
	initial  []domain.Finding
	residual []domain.Finding
	calls    int
}

func (l *fakeLinter) Analyze(ctx context.Context, snip domain.Snippet) []domain.Finding {
	l.calls++
	if l.calls == 1 {
		return l.initial
	}
	return l.residual
}

// fakeFormatter applies a scripted rewrite.
type fakeFormatter struct {
	output string
	calls  int
}

func (f *fakeFormatter) Format(ctx context.Context, code string, lang domain.Language) string {
	f.calls++
	if f.output == "" {
		return code
	}
	return f.output
}

// fakeFixer returns a scripted reply or error.
type fakeFixer struct {
	configured bool
	output     string
	err        error
	calls      int
}

func (f *fakeFixer) Configured() bool { return f.configured }

func (f *fakeFixer) Fix(ctx context.Context, snip domain.Snippet, findings []domain.Finding) (string, error) {
	f.calls++
	if f.err != nil {
		return snip.Code, f.err
	}
	return f.output, nil
}

var warning = domain.Finding{Tool: domain.ToolFlake8, Message: "E225 missing whitespace around operator", Severity: domain.SeverityWarning}

func TestRun_CleanCodeShortCircuits(t *testing.T) {
	linter := &fakeLinter{}
	formatter := &fakeFormatter{}
	fixer := &fakeFixer{configured: true}
	p := New(linter, formatter, fixer)

	result := p.Run(context.Background(), domain.Snippet{Code: "x = 1\n", Language: domain.LangPython})

	if !result.Clean() {
		t.Error("expected clean result")
	}
	if result.Fixed != result.Original {
		t.Error("expected code unchanged for clean input")
	}
	if formatter.calls != 0 {
		t.Errorf("expected formatter not to run, got %d calls", formatter.calls)
	}
	if fixer.calls != 0 {
		t.Errorf("expected fixer not to run, got %d calls", fixer.calls)
	}
}

func TestRun_MismatchShortCircuits(t *testing.T) {
	mismatch := domain.Finding{Tool: domain.ToolLanguageMismatch, Severity: domain.SeverityError, Message: "mismatch"}
	linter := &fakeLinter{initial: []domain.Finding{mismatch}}
	formatter := &fakeFormatter{}
	fixer := &fakeFixer{configured: true}
	p := New(linter, formatter, fixer)

	result := p.Run(context.Background(), domain.Snippet{Code: "public class Main {}", Language: domain.LangPython})

	if len(result.Findings) != 1 || result.Findings[0].Tool != domain.ToolLanguageMismatch {
		t.Fatalf("expected the single mismatch finding, got %+v", result.Findings)
	}
	if result.Changed() {
		t.Error("expected code unchanged on mismatch")
	}
	if linter.calls != 1 {
		t.Errorf("expected no relint on mismatch, got %d analyze calls", linter.calls)
	}
	if fixer.calls != 0 {
		t.Errorf("expected fixer not to run, got %d calls", fixer.calls)
	}
}

func TestRun_FormattingResolvesEverything(t *testing.T) {
	linter := &fakeLinter{initial: []domain.Finding{warning}, residual: nil}
	formatter := &fakeFormatter{output: "x = 1\n"}
	fixer := &fakeFixer{configured: true}
	p := New(linter, formatter, fixer)

	result := p.Run(context.Background(), domain.Snippet{Code: "x=1\n", Language: domain.LangPython})

	if result.Fixed != "x = 1\n" {
		t.Errorf("expected formatted output, got %q", result.Fixed)
	}
	if len(result.Residual) != 0 {
		t.Errorf("expected no residual findings, got %d", len(result.Residual))
	}
	if fixer.calls != 0 {
		t.Errorf("expected fixer skipped when formatting resolves everything, got %d calls", fixer.calls)
	}
}

func TestRun_UnconfiguredFixerReturnsFormatted(t *testing.T) {
	linter := &fakeLinter{initial: []domain.Finding{warning}, residual: []domain.Finding{warning}}
	formatter := &fakeFormatter{output: "x = 1 # still long\n"}
	fixer := &fakeFixer{configured: false}
	p := New(linter, formatter, fixer)

	result := p.Run(context.Background(), domain.Snippet{Code: "x=1\n", Language: domain.LangPython})

	if result.Fixed != "x = 1 # still long\n" {
		t.Errorf("expected formatted output, got %q", result.Fixed)
	}
	if result.FixErr != nil {
		t.Errorf("expected no fix error when fixer is simply unconfigured, got %v", result.FixErr)
	}
	if len(result.Residual) != 1 {
		t.Errorf("expected residual findings reported, got %d", len(result.Residual))
	}
	if fixer.calls != 0 {
		t.Errorf("expected fixer not invoked, got %d calls", fixer.calls)
	}
}

func TestRun_FixErrorKeepsFormattedCode(t *testing.T) {
	fixErr := types.NewTransportError("openai request", errors.New("connection refused"))
	linter := &fakeLinter{initial: []domain.Finding{warning}, residual: []domain.Finding{warning}}
	formatter := &fakeFormatter{output: "x = 1\n"}
	fixer := &fakeFixer{configured: true, err: fixErr}
	p := New(linter, formatter, fixer)

	result := p.Run(context.Background(), domain.Snippet{Code: "x=1\n", Language: domain.LangPython})

	if result.Fixed != "x = 1\n" {
		t.Errorf("expected formatted code kept after fix failure, got %q", result.Fixed)
	}
	if !errors.Is(result.FixErr, fixErr) {
		t.Errorf("expected fix error surfaced, got %v", result.FixErr)
	}
}

func TestRun_FullFixPath(t *testing.T) {
	linter := &fakeLinter{initial: []domain.Finding{warning}, residual: []domain.Finding{warning}}
	formatter := &fakeFormatter{}
	fixer := &fakeFixer{configured: true, output: "x = compute()\n"}
	p := New(linter, formatter, fixer)

	result := p.Run(context.Background(), domain.Snippet{Code: "x=compute( )\n", Language: domain.LangPython})

	if result.Fixed != "x = compute()\n" {
		t.Errorf("expected AI-fixed output, got %q", result.Fixed)
	}
	if result.Original != "x=compute( )\n" {
		t.Errorf("expected original preserved, got %q", result.Original)
	}
	if fixer.calls != 1 {
		t.Errorf("expected exactly one fix attempt, got %d", fixer.calls)
	}
	// lint + relint, never a third pass over the fixed output
	if linter.calls != 2 {
		t.Errorf("expected 2 analyze calls, got %d", linter.calls)
	}
	if !result.Changed() {
		t.Error("expected result to report a change")
	}
}
