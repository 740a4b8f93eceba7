package llm

import (
	"context"
	"fmt"

	"github.com/dut-ailab/advisor-go/internal/config"
)

// FromConfig builds the provider fallback chain in the order listed by
// ADVISOR_LLM_PROVIDERS. Providers without an API key are skipped, so the
// chain may be empty; callers check IsEnabled before relying on it.
func FromConfig(ctx context.Context, cfg *config.Config) (*Chain, error) {
	var completers []Completer

	for _, name := range cfg.LLMProviders {
		switch Provider(name) {
		case ProviderOpenAI:
			c, err := NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
			if err != nil {
				return nil, fmt.Errorf("openai completer: %w", err)
			}
			completers = append(completers, c)
		case ProviderGemini:
			c, err := NewGeminiCompleter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
			if err != nil {
				return nil, fmt.Errorf("gemini completer: %w", err)
			}
			completers = append(completers, c)
		default:
			return nil, fmt.Errorf("unknown LLM provider: %s", name)
		}
	}

	return NewChain(completers...), nil
}
