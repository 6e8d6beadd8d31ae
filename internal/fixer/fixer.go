// Package fixer asks a chat-completion model to rewrite a snippet so
// that it addresses the linter findings.
package fixer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MaanyaBS/ai-code-review-bot/internal/domain"
	"github.com/MaanyaBS/ai-code-review-bot/internal/llm"
	"github.com/MaanyaBS/ai-code-review-bot/internal/types"
)

const systemPrompt = "You are an expert code reviewer who fixes code issues professionally."

// AIFixer builds a fix prompt from a snippet and its findings and
// post-processes the model reply into replacement source text.
type AIFixer struct {
	client llm.Client
}

// New creates an AIFixer on top of an LLM client.
func New(client llm.Client) *AIFixer {
	return &AIFixer{client: client}
}

// Configured reports whether a model credential is available.
func (f *AIFixer) Configured() bool {
	return f.client.Configured()
}

// Fix requests a corrected version of the snippet. On any failure
// (missing credential, transport error, empty reply) the original code
// is returned unchanged alongside a non-nil error; Fix never panics and
// never propagates an exception-style failure to the orchestrator.
func (f *AIFixer) Fix(ctx context.Context, snip domain.Snippet, findings []domain.Finding) (string, error) {
	if !f.client.Configured() {
		return snip.Code, types.ErrNoAPIKey
	}

	reply, err := f.client.Complete(ctx, systemPrompt, BuildPrompt(snip, findings))
	if err != nil {
		slog.Warn("ai fix failed", "error", err)
		return snip.Code, err
	}

	fixed := types.CleanCodeFromMarkdown(reply)
	if strings.TrimSpace(fixed) == "" {
		return snip.Code, types.NewTransportError("ai fix", fmt.Errorf("model returned empty code"))
	}

	slog.Info("ai fix applied", "model", f.client.Model(), "findings", len(findings))
	return fixed, nil
}

// BuildPrompt renders the fix request: the full snippet plus one
// "- tool: message" line per finding.
func BuildPrompt(snip domain.Snippet, findings []domain.Finding) string {
	var issues strings.Builder
	for _, f := range findings {
		fmt.Fprintf(&issues, "- %s: %s\n", f.Tool, f.Message)
	}

	return fmt.Sprintf(`You are an expert code reviewer. Fix the following %s code based on the linter issues:

Original Code:
`+"```%s"+`
%s
`+"```"+`

Linter Issues:
%s
Please provide the corrected code that addresses these issues. Focus on:
1. Code style and formatting
2. Best practices
3. Error fixes
4. Maintainability

Return only the corrected code without any explanation or markdown formatting.`,
		snip.Language, snip.Language, snip.Code, issues.String())
}
