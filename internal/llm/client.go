package llm

import "context"

// Client defines the interface for interacting with a chat-completion provider.
type Client interface {
	// Complete sends one chat completion request and returns the reply text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Configured reports whether a credential is present. When false,
	// Complete always fails with a ConfigurationError.
	Configured() bool
	// Model returns the model name requests are sent with.
	Model() string
}
