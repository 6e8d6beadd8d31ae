package formatter

import (
	"context"
	"testing"
	"time"

	"github.com/MaanyaBS/ai-code-review-bot/internal/config"
	"github.com/MaanyaBS/ai-code-review-bot/internal/domain"
)

func testFormatter() *PyFormatter {
	cfg := &config.Config{}
	cfg.Lint.Timeout = 5 * time.Second
	cfg.Lint.MaxLineLength = 88
	return New(cfg)
}

func TestFormat_NonPythonIsUntouched(t *testing.T) {
	f := testFormatter()
	// Deliberately ugly input: no formatter may run on these languages.
	code := "function  foo( ){return 1 ;}"

	for _, lang := range []domain.Language{
		domain.LangJavaScript, domain.LangJava, domain.LangC, domain.LangCPP, domain.LangUnknown,
	} {
		if got := f.Format(context.Background(), code, lang); got != code {
			t.Errorf("expected %s input back byte-identical, got %q", lang, got)
		}
	}
}

func TestFormat_ToolFailureKeepsInput(t *testing.T) {
	f := testFormatter()
	f.IsortBin = "isort-binary-that-does-not-exist"
	code := "import os\nimport sys\n"

	if got := f.Format(context.Background(), code, domain.LangPython); got != code {
		t.Errorf("expected original input after tool failure, got %q", got)
	}
}

func TestFormat_SecondToolFailureKeepsInput(t *testing.T) {
	f := testFormatter()
	// First stage succeeds as a passthrough, second stage cannot start:
	// the caller must still get the original text, not the intermediate.
	f.IsortBin = "cat"
	f.Autopep8Bin = "autopep8-binary-that-does-not-exist"
	code := "x=1\n"

	if got := f.Format(context.Background(), code, domain.LangPython); got != code {
		t.Errorf("expected original input after second-stage failure, got %q", got)
	}
}

func TestPipe_Passthrough(t *testing.T) {
	f := testFormatter()
	out, err := f.pipe(context.Background(), "hello\n", "cat", "-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hello\n" {
		t.Errorf("expected passthrough output, got %q", out)
	}
}
