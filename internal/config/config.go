package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the configuration for the code review bot.
type Config struct {
	Log struct {
		Level    string `yaml:"level"`  // DEBUG, INFO, WARN, ERROR
		Format   string `yaml:"format"` // text, json
		Output   string `yaml:"output"` // stdout, stderr, /path/to/file
		Rotation struct {
			MaxSize    int  `yaml:"max_size"`    // Megabytes
			MaxBackups int  `yaml:"max_backups"` // Number of old files to keep
			MaxAge     int  `yaml:"max_age"`     // Days to keep
			Compress   bool `yaml:"compress"`
		} `yaml:"rotation"`
	} `yaml:"log"`

	Server struct {
		Port         int           `yaml:"port"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		MaxBodySize  int64         `yaml:"max_body_size"`
	} `yaml:"server"`

	OpenAI struct {
		APIKey    string        `yaml:"-"` // From Env
		Model     string        `yaml:"model"`
		Endpoint  string        `yaml:"endpoint"`
		Timeout   time.Duration `yaml:"timeout"`
		MaxTokens int64         `yaml:"max_tokens"`
	} `yaml:"openai"`

	Lint struct {
		Timeout       time.Duration `yaml:"timeout"`         // Per tool invocation
		MaxLineLength int           `yaml:"max_line_length"` // Passed to flake8/autopep8
	} `yaml:"lint"`

	GitHub struct {
		Token     string `yaml:"-"` // From Env
		EventPath string `yaml:"-"` // From Env, CI mode only
		Remote    string `yaml:"remote"`
	} `yaml:"github"`

	Review ReviewConfig `yaml:"review"`
}

// ReviewConfig holds limits for the CI review commentary tool.
type ReviewConfig struct {
	MaxFiles      int `yaml:"max_files"`       // Changed files included in the prompt
	MaxPatchChars int `yaml:"max_patch_chars"` // Per-file diff cap
}

// GetLogLevel returns the slog.Level based on Log.Level string
func (c *Config) GetLogLevel() slog.Level {
	switch strings.ToUpper(c.Log.Level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OpenAIConfigured reports whether a model credential is present.
// When false the AI fixing step is disabled; everything else still runs.
func (c *Config) OpenAIConfigured() bool {
	return c.OpenAI.APIKey != ""
}

// LoadConfig loads configuration from the YAML file and supplements it
// with environment variables for secrets and common overrides.
func LoadConfig() *Config {
	cfg := &Config{}

	// Defaults before loading
	cfg.Log.Level = "INFO"
	cfg.Log.Format = "text"
	cfg.Log.Output = "stdout"
	cfg.Log.Rotation.MaxSize = 100
	cfg.Log.Rotation.MaxBackups = 10
	cfg.Log.Rotation.MaxAge = 7
	cfg.Log.Rotation.Compress = true
	cfg.Server.Port = 5000
	cfg.Server.ReadTimeout = 10 * time.Second
	cfg.Server.WriteTimeout = 120 * time.Second
	cfg.Server.MaxBodySize = DefaultMaxBodySize
	cfg.OpenAI.Model = DefaultModel
	cfg.OpenAI.Endpoint = DefaultEndpoint
	cfg.OpenAI.Timeout = 60 * time.Second
	cfg.OpenAI.MaxTokens = 2000
	cfg.Lint.Timeout = 30 * time.Second
	cfg.Lint.MaxLineLength = 88
	cfg.GitHub.Remote = "origin"
	cfg.Review.MaxFiles = 10
	cfg.Review.MaxPatchChars = 3000

	configPath := getEnv("CONFIG_PATH", DefaultConfigPath)
	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			slog.Error("unmarshal config failed", "error", err, "path", configPath)
			os.Exit(1)
		}
		slog.Info("config loaded", "path", configPath)
	} else {
		if !os.IsNotExist(err) {
			slog.Error("read config failed", "error", err, "path", configPath)
			os.Exit(1)
		}
		slog.Debug("config not found, using defaults", "path", configPath)
	}

	// Secrets and overrides always come from the environment
	cfg.OpenAI.APIKey = getEnv(EnvOpenAIKey, cfg.OpenAI.APIKey)
	cfg.GitHub.Token = getEnv(EnvGitHubToken, cfg.GitHub.Token)
	cfg.GitHub.EventPath = getEnv(EnvGitHubEventPath, cfg.GitHub.EventPath)

	if model := os.Getenv(EnvOpenAIModel); model != "" {
		if !KnownModel(model) {
			slog.Warn("unrecognized model name, using anyway", "model", model)
		}
		cfg.OpenAI.Model = model
	}

	if envPort := getEnvInt("PORT", 0); envPort != 0 {
		cfg.Server.Port = envPort
	}
	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		cfg.Log.Level = envLogLevel
	}
	if envLogFormat := os.Getenv("LOG_FORMAT"); envLogFormat != "" {
		cfg.Log.Format = envLogFormat
	}
	if envLogOutput := getEnv("LOG_OUTPUT", ""); envLogOutput != "" {
		cfg.Log.Output = envLogOutput
	}

	return cfg
}

// KnownModel reports whether name is on the known-good model list.
func KnownModel(name string) bool {
	for _, m := range KnownModels {
		if m == name {
			return true
		}
	}
	return false
}

// Validate validates the configuration for service mode. A missing
// OpenAI key is deliberately not an error here: it only disables fixing.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid server port: %d", c.Server.Port))
	}
	if c.Lint.Timeout <= 0 {
		errs = append(errs, "lint timeout must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config invalid: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
