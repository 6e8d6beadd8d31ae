package types

import "strings"

// CleanCodeFromMarkdown removes a single wrapping fenced code block,
// and the optional language tag on the opening fence, from an LLM
// reply. This is a textual contract only: the result is not validated
// as syntactically correct code.
func CleanCodeFromMarkdown(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")

	// The opening fence may carry a language tag ("```python\n...").
	if i := strings.IndexByte(s, '\n'); i >= 0 && isLanguageTag(strings.TrimSpace(s[:i])) {
		s = s[i+1:]
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// isLanguageTag reports whether the first fence line is a bare language
// identifier rather than code.
func isLanguageTag(s string) bool {
	if s == "" {
		return true
	}
	if len(s) > 20 {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '+' || r == '#') {
			return false
		}
	}
	return true
}
