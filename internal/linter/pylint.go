package linter

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MaanyaBS/ai-code-review-bot/internal/domain"
)

// PylintTool invokes pylint as a subprocess and parses its text output.
type PylintTool struct {
	Timeout time.Duration
}

// Name implements Tool.
func (t *PylintTool) Name() string {
	return domain.ToolPylint
}

// Run implements Tool.
func (t *PylintTool) Run(ctx context.Context, path string) ([]domain.Finding, error) {
	out, err := runTool(ctx, t.Timeout, "pylint", "--output-format=text", "--score=n", path)
	if err != nil {
		return nil, err
	}
	return ParsePylintOutput(out), nil
}

// pylintLine matches "path:line:col: C0114: message (symbol)". The
// column group is optional since older pylint versions omit it.
var pylintLine = regexp.MustCompile(`^(.*?):(\d+):(?:(\d+):)?\s*(.*)$`)

// pylintCode matches pylint message identifiers like C0114 or E0602.
var pylintCode = regexp.MustCompile(`^[CRWEF]\d{4}$`)

// ParsePylintOutput converts pylint's text report into findings,
// skipping banner and separator lines. Findings stay in output order.
func ParsePylintOutput(out string) []domain.Finding {
	var findings []domain.Finding
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "-") {
			continue
		}
		m := pylintLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		lineNo, _ := strconv.Atoi(m[2])
		col, _ := strconv.Atoi(m[3])
		msg := strings.TrimSpace(m[4])
		if msg == "" {
			continue
		}

		var code string
		if i := strings.IndexByte(msg, ':'); i > 0 {
			if c := strings.TrimSpace(msg[:i]); pylintCode.MatchString(c) {
				code = c
				msg = strings.TrimSpace(msg[i+1:])
			}
		}

		findings = append(findings, domain.Finding{
			Tool:     domain.ToolPylint,
			Line:     lineNo,
			Column:   col,
			Message:  msg,
			Severity: pylintSeverity(code),
			Code:     code,
		})
	}
	return findings
}

// pylintSeverity maps a message identifier to a severity. Errors and
// fatals are errors; convention, refactor and warning messages are
// warnings, matching how the tool itself groups them.
func pylintSeverity(code string) domain.Severity {
	if code == "" {
		return domain.SeverityWarning
	}
	switch code[0] {
	case 'E', 'F':
		return domain.SeverityError
	default:
		return domain.SeverityWarning
	}
}
