// Package language guesses the programming language of a raw snippet
// from superficial lexical cues. There is no parsing involved: detection
// is ordered substring matching against curated keyword lists, and can
// false-positive on polyglot or minimal snippets. It is a usability
// guard, not a correctness guarantee.
package language

import (
	"fmt"
	"strings"

	"github.com/MaanyaBS/ai-code-review-bot/internal/domain"
)

// Keyword lists per language category. Matched in order, most specific
// category first, so that e.g. Java's print statements do not trip the
// Python indicators. First matching category wins.
var (
	javaIndicators = []string{
		"public class",
		"public static void main",
		"system.out.println",
		"import java.",
	}
	cIndicators = []string{
		"#include",
		"int main(",
		"printf(",
		"scanf(",
		"std::",
		"cout<<",
		"cout <<",
		"cin>>",
		"cin >>",
	}
	pythonIndicators = []string{
		"def ",
		"import ",
		"from ",
		"class ",
		"if __name__ ==",
		"print(",
	}
	jsIndicators = []string{
		"function ",
		"const ",
		"let ",
		"var ",
		"console.log(",
		"document.",
		"=>",
	}
)

// Detect guesses the language of a code snippet. It returns LangUnknown
// when no category matches.
func Detect(code string) domain.Language {
	lower := strings.ToLower(strings.TrimSpace(code))

	if containsAny(lower, javaIndicators) {
		return domain.LangJava
	}

	if containsAny(lower, cIndicators) {
		// C when clearly C-flavored, C++ otherwise
		if strings.Contains(lower, ".h") || strings.Contains(lower, "malloc(") {
			return domain.LangC
		}
		return domain.LangCPP
	}

	if containsAny(lower, pythonIndicators) {
		return domain.LangPython
	}

	if containsAny(lower, jsIndicators) {
		return domain.LangJavaScript
	}

	return domain.LangUnknown
}

// CheckMismatch compares the declared language against the detected one.
// When they disagree (and detection produced a definite answer) it
// returns the single error finding the pipeline short-circuits on.
func CheckMismatch(code string, declared domain.Language) (domain.Finding, bool) {
	detected := Detect(code)
	if detected == domain.LangUnknown || detected == declared {
		return domain.Finding{}, false
	}
	return domain.Finding{
		Tool:     domain.ToolLanguageMismatch,
		Severity: domain.SeverityError,
		Message: fmt.Sprintf(
			"Code appears to be %s but language is set to %s. Please select the correct language.",
			strings.ToUpper(string(detected)), strings.ToUpper(string(declared)),
		),
	}, true
}

func containsAny(s string, indicators []string) bool {
	for _, indicator := range indicators {
		if strings.Contains(s, indicator) {
			return true
		}
	}
	return false
}
