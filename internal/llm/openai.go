package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openaiCompleter implements Completer over any OpenAI-compatible chat API.
type openaiCompleter struct {
	client openai.Client
	model  string
}

// NewOpenAICompleter creates a completer backed by the OpenAI chat API.
// A non-empty baseURL points the client at a compatible provider.
// Returns nil if apiKey is empty (provider disabled).
func NewOpenAICompleter(apiKey, model, baseURL string) (Completer, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // provider disabled when no API key
	}
	if model == "" {
		return nil, fmt.Errorf("model is required for openai completer")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &openaiCompleter{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (c *openaiCompleter) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	if c == nil {
		return "", errors.New("openai completer is nil")
	}

	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(temperature),
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "chat completion failed",
			"provider", ProviderOpenAI,
			"model", c.model,
			"prompt_length", len(prompt),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("empty response from model")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("model returned no text")
	}

	if resp.Usage.TotalTokens > 0 {
		slog.DebugContext(ctx, "chat completion succeeded",
			"provider", ProviderOpenAI,
			"model", c.model,
			"input_tokens", resp.Usage.PromptTokens,
			"output_tokens", resp.Usage.CompletionTokens,
			"duration_ms", duration.Milliseconds())
	}

	return text, nil
}

func (c *openaiCompleter) Provider() Provider { return ProviderOpenAI }

// Close releases resources. The openai client needs no cleanup.
func (c *openaiCompleter) Close() error { return nil }
