// Package llm provides text completion through OpenAI-compatible and Gemini
// APIs, with an ordered provider fallback chain. The rest of the service only
// sees the Completer interface.
package llm

import "context"

// Provider identifies an LLM backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// Completer generates a single text completion for a prompt.
type Completer interface {
	// Complete sends the prompt and returns the model's text output.
	// Temperature 0 requests deterministic output for classification and
	// extraction; rendering uses higher values.
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)

	// Provider returns the backend identifier, used in logs and metrics.
	Provider() Provider

	// Close releases any resources held by the backend.
	Close() error
}

// CompleterFunc adapts a function to the Completer interface.
// Used by tests to script model responses.
type CompleterFunc func(ctx context.Context, prompt string, temperature float64) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	return f(ctx, prompt, temperature)
}

func (f CompleterFunc) Provider() Provider { return "func" }

func (f CompleterFunc) Close() error { return nil }
