package llm

import (
	"context"
	"testing"

	"github.com/dut-ailab/advisor-go/internal/config"
)

func TestFromConfig_NoKeys(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		LLMProviders: []string{"openai", "gemini"},
	}

	chain, err := FromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}
	if chain.IsEnabled() {
		t.Error("IsEnabled() = true with no API keys")
	}
}

func TestFromConfig_OpenAIOnly(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		LLMProviders: []string{"openai"},
		OpenAIAPIKey: "sk-test",
		OpenAIModel:  "gpt-4o-mini",
	}

	chain, err := FromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}
	if !chain.IsEnabled() {
		t.Fatal("IsEnabled() = false, want true")
	}
	if got := chain.Provider(); got != ProviderOpenAI {
		t.Errorf("Provider() = %q, want %q", got, ProviderOpenAI)
	}
}

func TestFromConfig_MissingModel(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		LLMProviders: []string{"openai"},
		OpenAIAPIKey: "sk-test",
	}

	if _, err := FromConfig(context.Background(), cfg); err == nil {
		t.Error("FromConfig() error = nil, want model-required error")
	}
}

func TestFromConfig_UnknownProvider(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		LLMProviders: []string{"anthropic"},
	}

	if _, err := FromConfig(context.Background(), cfg); err == nil {
		t.Error("FromConfig() error = nil, want unknown-provider error")
	}
}
