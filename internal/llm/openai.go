package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/MaanyaBS/ai-code-review-bot/internal/config"
	"github.com/MaanyaBS/ai-code-review-bot/internal/metrics"
	"github.com/MaanyaBS/ai-code-review-bot/internal/types"
)

// OpenAIClient implements Client using the official OpenAI client.
// Safe for concurrent use as long as its configuration is not modified
// after creation.
type OpenAIClient struct {
	client    *openai.Client
	model     string
	timeout   time.Duration
	maxTokens int64
}

// NewOpenAIClient creates a client from configuration. When no API key
// is configured the returned client is disabled: Configured reports
// false and Complete fails with ErrNoAPIKey instead of calling out.
func NewOpenAIClient(cfg *config.Config) *OpenAIClient {
	c := &OpenAIClient{
		model:     cfg.OpenAI.Model,
		timeout:   cfg.OpenAI.Timeout,
		maxTokens: cfg.OpenAI.MaxTokens,
	}
	if !cfg.OpenAIConfigured() {
		return c
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.OpenAI.APIKey),
		option.WithBaseURL(cfg.OpenAI.Endpoint),
	)
	c.client = &client
	return c
}

// Configured reports whether a credential was present at construction.
func (c *OpenAIClient) Configured() bool {
	return c.client != nil
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Complete sends one chat completion request. Exactly one attempt is
// made; transport and API failures come back as a TransportError.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.client == nil {
		return "", types.ErrNoAPIKey
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(userPrompt))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    messages,
		MaxTokens:   openai.Int(c.maxTokens),
		Temperature: openai.Float(0.1),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		metrics.LLMCalls.WithLabelValues("error").Inc()
		return "", types.NewTransportError("openai request", err)
	}
	metrics.LLMCalls.WithLabelValues("success").Inc()

	if len(resp.Choices) == 0 {
		return "", types.NewTransportError("openai request", fmt.Errorf("no choices in response"))
	}

	slog.Debug("llm call completed", "model", c.model, "reply_len", len(resp.Choices[0].Message.Content))
	return resp.Choices[0].Message.Content, nil
}
