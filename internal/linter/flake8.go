package linter

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MaanyaBS/ai-code-review-bot/internal/domain"
)

// Flake8Tool invokes flake8 as a subprocess and parses its default
// per-line output.
type Flake8Tool struct {
	Timeout       time.Duration
	MaxLineLength int
}

// Name implements Tool.
func (t *Flake8Tool) Name() string {
	return domain.ToolFlake8
}

// Run implements Tool.
func (t *Flake8Tool) Run(ctx context.Context, path string) ([]domain.Finding, error) {
	out, err := runTool(ctx, t.Timeout, "flake8",
		fmt.Sprintf("--max-line-length=%d", t.MaxLineLength), path)
	if err != nil {
		return nil, err
	}
	return ParseFlake8Output(out), nil
}

// flake8Line matches "path:line:col: E302 expected 2 blank lines".
var flake8Line = regexp.MustCompile(`^(.*?):(\d+):(\d+):\s*(\S+)\s+(.*)$`)

// ParseFlake8Output converts flake8's default output into findings in
// output order.
func ParseFlake8Output(out string) []domain.Finding {
	var findings []domain.Finding
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := flake8Line.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		lineNo, _ := strconv.Atoi(m[2])
		col, _ := strconv.Atoi(m[3])
		code := m[4]
		msg := strings.TrimSpace(m[5])
		if msg == "" {
			continue
		}

		findings = append(findings, domain.Finding{
			Tool:     domain.ToolFlake8,
			Line:     lineNo,
			Column:   col,
			Message:  fmt.Sprintf("%s %s", code, msg),
			Severity: flake8Severity(code),
			Code:     code,
		})
	}
	return findings
}

// flake8Severity maps a check code to a severity. E9xx are syntax
// errors and Fxxx are pyflakes failures; everything else is style.
func flake8Severity(code string) domain.Severity {
	if strings.HasPrefix(code, "E9") || strings.HasPrefix(code, "F") {
		return domain.SeverityError
	}
	return domain.SeverityWarning
}
