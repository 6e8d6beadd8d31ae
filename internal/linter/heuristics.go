package linter

import (
	"fmt"
	"strings"

	"github.com/MaanyaBS/ai-code-review-bot/internal/domain"
)

// javascriptHeuristics returns best-effort style hints for JavaScript.
// These are advisories, not guarantees of correctness.
func javascriptHeuristics(code string) []domain.Finding {
	findings := []domain.Finding{{
		Tool:     domain.ToolLanguageSupport,
		Severity: domain.SeverityInfo,
		Message:  "JavaScript linting support is limited. Consider using ESLint for full analysis.",
	}}

	if strings.Contains(code, "var ") && !strings.Contains(code, "const ") && !strings.Contains(code, "let ") {
		findings = append(findings, domain.Finding{
			Tool:     domain.ToolStyle,
			Severity: domain.SeverityWarning,
			Message:  "Consider using const/let instead of var for better scoping",
		})
	}
	return findings
}

// structureHeuristics returns best-effort structural hints for Java and
// the C family.
func structureHeuristics(code string, lang domain.Language) []domain.Finding {
	findings := []domain.Finding{{
		Tool:     domain.ToolLanguageSupport,
		Severity: domain.SeverityInfo,
		Message: fmt.Sprintf("%s linting support is limited. Full analysis requires language-specific tools.",
			strings.ToUpper(string(lang))),
	}}

	switch lang {
	case domain.LangJava:
		if !strings.Contains(code, "class ") {
			findings = append(findings, domain.Finding{
				Tool:     domain.ToolStructure,
				Severity: domain.SeverityWarning,
				Message:  "Java code should contain at least one class definition",
			})
		}
	case domain.LangC, domain.LangCPP:
		if !strings.Contains(code, "int main") && !strings.Contains(code, "void main") {
			findings = append(findings, domain.Finding{
				Tool:     domain.ToolStructure,
				Severity: domain.SeverityWarning,
				Message:  "C/C++ code should contain a main function",
			})
		}
	}
	return findings
}
