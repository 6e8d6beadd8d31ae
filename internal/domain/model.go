package domain

// Severity classifies how serious a finding is.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding is one normalized issue reported by a linter or heuristic check.
// Findings live only for the duration of a single pipeline run.
type Finding struct {
	Tool     string   `json:"type"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Code     string   `json:"code,omitempty"`
}

// Finding tool / category identifiers.
const (
	ToolPylint           = "pylint"
	ToolFlake8           = "flake8"
	ToolLanguageMismatch = "language_mismatch"
	ToolLanguageSupport  = "language_support"
	ToolStyle            = "style"
	ToolStructure        = "structure"
	ToolUnsupported      = "unsupported"
)

// Snippet is the source text under analysis for one pipeline run.
// It is owned exclusively by that run and mutated in place as
// formatting and fixing steps replace its content. Declared carries the
// caller's language string as given, so diagnostics can echo it back
// verbatim; it is empty when the language came from a file extension.
type Snippet struct {
	Code     string
	Language Language
	Declared string
}

// DeclaredLanguage returns the caller's language string when one was
// given, falling back to the normalized tag.
func (s Snippet) DeclaredLanguage() string {
	if s.Declared != "" {
		return s.Declared
	}
	return string(s.Language)
}

// PullRequestOutcome records the single delivery attempt for a fix.
type PullRequestOutcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"pr_url,omitempty"`
}

// PipelineResult aggregates everything one pipeline run produced.
// Findings holds the issues from the initial lint pass; Residual holds
// whatever the re-lint after formatting still reported.
type PipelineResult struct {
	Original string
	Fixed    string
	Findings []Finding
	Residual []Finding
	FixErr   error
	PR       *PullRequestOutcome
}

// Clean reports whether the initial lint pass found nothing.
func (r *PipelineResult) Clean() bool {
	return len(r.Findings) == 0
}

// Changed reports whether the pipeline produced different source text.
func (r *PipelineResult) Changed() bool {
	return r.Fixed != r.Original
}

// IsLanguageMismatch reports whether findings consist of the single
// synthetic finding produced when declared and detected languages differ.
func IsLanguageMismatch(findings []Finding) bool {
	return len(findings) == 1 && findings[0].Tool == ToolLanguageMismatch
}
