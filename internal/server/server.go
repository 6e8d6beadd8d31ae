// Package server exposes the analyze/fix workflow over HTTP for a
// single pasted snippet per request.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MaanyaBS/ai-code-review-bot/internal/config"
	"github.com/MaanyaBS/ai-code-review-bot/internal/domain"
	"github.com/MaanyaBS/ai-code-review-bot/internal/metrics"
)

// Analyzer lints one snippet.
type Analyzer interface {
	Analyze(ctx context.Context, snip domain.Snippet) []domain.Finding
}

// PipelineRunner runs the full fix flow for one snippet.
type PipelineRunner interface {
	Run(ctx context.Context, snip domain.Snippet) domain.PipelineResult
}

// SnippetPublisher creates the demonstration single-snippet PR.
type SnippetPublisher interface {
	CreateSnippetPR(original, fixed string, findings []domain.Finding, lang domain.Language) domain.PullRequestOutcome
}

// Server holds the request handlers for service mode. Each request owns
// its snippet and temp-file state exclusively; the server itself is
// stateless and safe under net/http's default concurrent dispatch.
type Server struct {
	cfg      *config.Config
	analyzer Analyzer
	pipeline PipelineRunner
	forge    SnippetPublisher
}

// New creates a Server with explicitly injected dependencies.
func New(cfg *config.Config, analyzer Analyzer, pipeline PipelineRunner, forge SnippetPublisher) *Server {
	return &Server{cfg: cfg, analyzer: analyzer, pipeline: pipeline, forge: forge}
}

// Routes builds the service mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/fix", s.handleFix)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

type snippetRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	CreatePR bool   `json:"create_pr"`
}

type analyzeResponse struct {
	Issues      []domain.Finding `json:"issues"`
	IssuesCount int              `json:"issues_count"`
}

type fixResponse struct {
	OriginalCode string                     `json:"original_code"`
	FixedCode    string                     `json:"fixed_code"`
	Issues       []domain.Finding           `json:"issues"`
	IssuesCount  int                        `json:"issues_count"`
	Message      string                     `json:"message,omitempty"`
	FixError     string                     `json:"fix_error,omitempty"`
	PRResult     *domain.PullRequestOutcome `json:"pr_result"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "AI Code Review Bot API is running",
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{
		"openai_configured": s.cfg.OpenAIConfigured(),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	snip, ok := s.decodeSnippet(w, r, "analyze")
	if !ok {
		return
	}

	issues := s.analyzer.Analyze(r.Context(), snip.Snippet)
	metrics.HTTPRequests.WithLabelValues("analyze", "ok").Inc()
	writeJSON(w, http.StatusOK, analyzeResponse{
		Issues:      nonNil(issues),
		IssuesCount: len(issues),
	})
}

func (s *Server) handleFix(w http.ResponseWriter, r *http.Request) {
	snip, ok := s.decodeSnippet(w, r, "fix")
	if !ok {
		return
	}
	createPR := snip.createPR

	result := s.pipeline.Run(r.Context(), snip.Snippet)

	resp := fixResponse{
		OriginalCode: result.Original,
		FixedCode:    result.Fixed,
		Issues:       nonNil(result.Findings),
		IssuesCount:  len(result.Findings),
	}
	if result.Clean() {
		resp.Message = "No issues found - code is already clean!"
	}
	if result.FixErr != nil {
		// The error is surfaced as a field; the computed code is kept.
		resp.FixError = result.FixErr.Error()
	}

	// A PR failure must never discard the already-computed fixed code.
	if createPR && !result.Clean() {
		pr := s.forge.CreateSnippetPR(result.Original, result.Fixed, result.Findings, snip.Language)
		resp.PRResult = &pr
	}

	metrics.HTTPRequests.WithLabelValues("fix", "ok").Inc()
	writeJSON(w, http.StatusOK, resp)
}

// decodedSnippet carries the snippet plus the create_pr flag from /fix.
type decodedSnippet struct {
	domain.Snippet
	createPR bool
}

// decodeSnippet parses and validates the request body shared by
// /analyze and /fix. It writes the error response itself when the
// request is unusable.
func (s *Server) decodeSnippet(w http.ResponseWriter, r *http.Request, endpoint string) (decodedSnippet, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return decodedSnippet{}, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodySize)
	var req snippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("decode request failed", "endpoint", endpoint, "error", err)
		metrics.HTTPRequests.WithLabelValues(endpoint, "bad_request").Inc()
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return decodedSnippet{}, false
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return decodedSnippet{}, false
	}

	if strings.TrimSpace(req.Code) == "" {
		metrics.HTTPRequests.WithLabelValues(endpoint, "bad_request").Inc()
		writeError(w, http.StatusBadRequest, "No code provided")
		return decodedSnippet{}, false
	}

	lang := req.Language
	if lang == "" {
		lang = "python"
	}

	return decodedSnippet{
		Snippet: domain.Snippet{
			Code:     req.Code,
			Language: domain.ParseLanguage(lang),
			Declared: lang,
		},
		createPR: req.CreatePR,
	}, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// nonNil keeps empty finding lists serializing as [] rather than null.
func nonNil(findings []domain.Finding) []domain.Finding {
	if findings == nil {
		return []domain.Finding{}
	}
	return findings
}
