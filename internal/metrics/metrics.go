package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts service-mode requests, labeled by endpoint and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "review_bot_http_requests_total",
		Help: "The total number of HTTP requests handled by the service",
	}, []string{"endpoint", "status"}) // status: ok, bad_request, error

	// PipelineDuration measures end-to-end fix pipeline runs.
	PipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "review_bot_pipeline_duration_seconds",
		Help:    "Time taken to run the fix pipeline for one snippet",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"}) // result: clean, mismatch, formatted, fixed, error

	// LintToolRuns counts linter subprocess invocations.
	LintToolRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "review_bot_lint_tool_runs_total",
		Help: "The total number of linter tool invocations",
	}, []string{"tool", "status"}) // status: ok, timeout, error

	// LLMCalls counts chat-completion requests.
	LLMCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "review_bot_llm_calls_total",
		Help: "The total number of model API calls",
	}, []string{"status"}) // status: success, error

	// PullRequests counts delivery attempts, labeled by mode and status.
	PullRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "review_bot_pull_requests_total",
		Help: "The total number of pull request delivery attempts",
	}, []string{"mode", "status"}) // mode: batch, snippet; status: success, failed
)
