package linter

import (
	"context"
	"strings"
	"testing"

	"github.com/MaanyaBS/ai-code-review-bot/internal/config"
	"github.com/MaanyaBS/ai-code-review-bot/internal/domain"
)

func testAnalyzer() *Analyzer {
	cfg := &config.Config{}
	cfg.Lint.Timeout = 0
	cfg.Lint.MaxLineLength = 88
	return NewAnalyzer(cfg)
}

func TestAnalyze_LanguageMismatch(t *testing.T) {
	a := testAnalyzer()
	snip := domain.Snippet{
		Code:     "public class Main {\n    public static void main(String[] args) {}\n}",
		Language: domain.LangPython,
	}

	findings := a.Analyze(context.Background(), snip)
	if len(findings) != 1 {
		t.Fatalf("expected exactly 1 finding, got %d: %+v", len(findings), findings)
	}
	if findings[0].Tool != domain.ToolLanguageMismatch {
		t.Errorf("expected language_mismatch finding, got %s", findings[0].Tool)
	}
	if findings[0].Severity != domain.SeverityError {
		t.Errorf("expected error severity, got %s", findings[0].Severity)
	}
}

func TestAnalyze_UnsupportedLanguage(t *testing.T) {
	a := testAnalyzer()
	snip := domain.Snippet{Code: "x + y", Language: domain.LangUnknown, Declared: "ruby"}

	findings := a.Analyze(context.Background(), snip)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Tool != domain.ToolUnsupported {
		t.Errorf("expected unsupported finding, got %s", findings[0].Tool)
	}
	if findings[0].Severity != domain.SeverityWarning {
		t.Errorf("expected warning severity, got %s", findings[0].Severity)
	}
	// The caller's own string comes back, not the normalized tag.
	if !strings.Contains(findings[0].Message, `"ruby"`) {
		t.Errorf("expected declared language echoed, got %q", findings[0].Message)
	}
}

func TestAnalyze_UnsupportedLanguageWithoutDeclared(t *testing.T) {
	a := testAnalyzer()
	snip := domain.Snippet{Code: "x + y", Language: domain.LangUnknown}

	findings := a.Analyze(context.Background(), snip)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if !strings.Contains(findings[0].Message, `"unknown"`) {
		t.Errorf("expected normalized tag fallback, got %q", findings[0].Message)
	}
}

func TestJavascriptHeuristics(t *testing.T) {
	t.Run("var without const or let", func(t *testing.T) {
		findings := javascriptHeuristics("var x = 1;\nconsole.log(x);")
		if len(findings) != 2 {
			t.Fatalf("expected 2 findings, got %d: %+v", len(findings), findings)
		}
		if findings[0].Tool != domain.ToolLanguageSupport {
			t.Errorf("expected language_support advisory first, got %s", findings[0].Tool)
		}
		if findings[1].Tool != domain.ToolStyle {
			t.Errorf("expected style finding, got %s", findings[1].Tool)
		}
		if !strings.Contains(findings[1].Message, "const/let") {
			t.Errorf("unexpected style message %q", findings[1].Message)
		}
	})

	t.Run("modern declarations", func(t *testing.T) {
		findings := javascriptHeuristics("const x = 1;\nconsole.log(x);")
		if len(findings) != 1 {
			t.Fatalf("expected only the advisory, got %d findings", len(findings))
		}
	})
}

func TestStructureHeuristics(t *testing.T) {
	t.Run("java without class", func(t *testing.T) {
		findings := structureHeuristics("System.out.println(\"hi\");", domain.LangJava)
		if len(findings) != 2 {
			t.Fatalf("expected 2 findings, got %d", len(findings))
		}
		if findings[1].Tool != domain.ToolStructure {
			t.Errorf("expected structure finding, got %s", findings[1].Tool)
		}
	})

	t.Run("java with class", func(t *testing.T) {
		findings := structureHeuristics("public class Main {}", domain.LangJava)
		if len(findings) != 1 {
			t.Fatalf("expected only the advisory, got %d findings", len(findings))
		}
	})

	t.Run("c without main", func(t *testing.T) {
		findings := structureHeuristics("#include <stdio.h>\n", domain.LangC)
		if len(findings) != 2 {
			t.Fatalf("expected 2 findings, got %d", len(findings))
		}
		if !strings.Contains(findings[1].Message, "main function") {
			t.Errorf("unexpected structure message %q", findings[1].Message)
		}
	})

	t.Run("cpp with main", func(t *testing.T) {
		findings := structureHeuristics("int main() { return 0; }", domain.LangCPP)
		if len(findings) != 1 {
			t.Fatalf("expected only the advisory, got %d findings", len(findings))
		}
	})
}

func TestToolFailureFinding(t *testing.T) {
	f := toolFailureFinding("pylint", context.DeadlineExceeded)
	if f.Severity != domain.SeverityInfo {
		t.Errorf("expected info severity, got %s", f.Severity)
	}
	if !strings.Contains(f.Message, "pylint did not run") {
		t.Errorf("unexpected message %q", f.Message)
	}
}
