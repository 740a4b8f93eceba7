package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiCompleter implements Completer over the Gemini API.
type geminiCompleter struct {
	client *genai.Client
	model  string
}

// NewGeminiCompleter creates a completer backed by the Gemini API.
// Returns nil if apiKey is empty (provider disabled).
func NewGeminiCompleter(ctx context.Context, apiKey, model string) (Completer, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // provider disabled when no API key
	}
	if model == "" {
		return nil, fmt.Errorf("model is required for gemini completer")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiCompleter{client: client, model: model}, nil
}

func (c *geminiCompleter) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("gemini completer is nil")
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(temperature)),
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "generate content failed",
			"provider", ProviderGemini,
			"model", c.model,
			"prompt_length", len(prompt),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", fmt.Errorf("generate content failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from model")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			out.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", errors.New("model returned no text")
	}

	if resp.UsageMetadata != nil {
		slog.DebugContext(ctx, "generate content succeeded",
			"provider", ProviderGemini,
			"model", c.model,
			"input_tokens", resp.UsageMetadata.PromptTokenCount,
			"output_tokens", resp.UsageMetadata.CandidatesTokenCount,
			"duration_ms", duration.Milliseconds())
	}

	return text, nil
}

func (c *geminiCompleter) Provider() Provider { return ProviderGemini }

// Close releases resources. The genai client needs no explicit cleanup.
func (c *geminiCompleter) Close() error { return nil }
