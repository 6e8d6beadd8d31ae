package config

// Default configuration values
const (
	DefaultConfigPath        = "config.yaml"
	DefaultMaxBodySize int64 = 1 * 1024 * 1024 // 1MB, single snippets only
	DefaultModel             = "gpt-3.5-turbo"
	DefaultEndpoint          = "https://api.openai.com/v1"
)

// KnownModels is the list of model names the fixer has been exercised
// against. An unrecognized OPENAI_MODEL is a warning, not an error.
var KnownModels = []string{
	"gpt-3.5-turbo",
	"gpt-4",
	"gpt-4-turbo",
	"gpt-4o",
	"gpt-4o-mini",
}

// Environment variable names
const (
	EnvOpenAIKey       = "OPENAI_API_KEY"
	EnvOpenAIModel     = "OPENAI_MODEL"
	EnvGitHubToken     = "GITHUB_TOKEN"
	EnvGitHubEventPath = "GITHUB_EVENT_PATH"
	EnvGitHubRepo      = "GITHUB_REPOSITORY"
)

// Batch mode directories that are never walked
var SkipDirs = []string{
	"__pycache__",
	"node_modules",
	"venv",
	"env",
	"dist",
	"build",
	"vendor",
}

// Bot identity used for commits created by the delivery adapter
const (
	BotCommitName  = "AI Code Review Bot"
	BotCommitEmail = "bot@ai-review.dev"
)
