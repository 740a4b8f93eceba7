package llm

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/dut-ailab/advisor-go/internal/errors"
)

// scriptedCompleter returns a fixed response or error and counts calls.
type scriptedCompleter struct {
	name  Provider
	text  string
	err   error
	calls int
}

func (s *scriptedCompleter) Complete(_ context.Context, _ string, _ float64) (string, error) {
	s.calls++
	return s.text, s.err
}

func (s *scriptedCompleter) Provider() Provider { return s.name }

func (s *scriptedCompleter) Close() error { return nil }

func TestChain_PrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := &scriptedCompleter{name: ProviderOpenAI, text: "answer"}
	secondary := &scriptedCompleter{name: ProviderGemini, text: "other"}
	chain := NewChain(primary, secondary)

	got, err := chain.Complete(context.Background(), "question", 0)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "answer" {
		t.Errorf("Complete() = %q, want %q", got, "answer")
	}
	if secondary.calls != 0 {
		t.Errorf("secondary called %d times, want 0", secondary.calls)
	}
}

func TestChain_FallsBackOnError(t *testing.T) {
	t.Parallel()

	primary := &scriptedCompleter{name: ProviderOpenAI, err: errors.New("rate limited")}
	secondary := &scriptedCompleter{name: ProviderGemini, text: "rescued"}
	chain := NewChain(primary, secondary)

	got, err := chain.Complete(context.Background(), "question", 0)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "rescued" {
		t.Errorf("Complete() = %q, want %q", got, "rescued")
	}
	if primary.calls != 1 {
		t.Errorf("primary called %d times, want 1", primary.calls)
	}
}

func TestChain_AllProvidersFail(t *testing.T) {
	t.Parallel()

	chain := NewChain(
		&scriptedCompleter{name: ProviderOpenAI, err: errors.New("down")},
		&scriptedCompleter{name: ProviderGemini, err: errors.New("also down")},
	)

	_, err := chain.Complete(context.Background(), "question", 0)
	if !errors.Is(err, apperrors.ErrLLMUnavailable) {
		t.Errorf("Complete() error = %v, want ErrLLMUnavailable", err)
	}
}

func TestChain_Empty(t *testing.T) {
	t.Parallel()

	chain := NewChain(nil, nil)

	if chain.IsEnabled() {
		t.Error("IsEnabled() = true for empty chain")
	}

	_, err := chain.Complete(context.Background(), "question", 0)
	if !errors.Is(err, apperrors.ErrLLMUnavailable) {
		t.Errorf("Complete() error = %v, want ErrLLMUnavailable", err)
	}
}

func TestChain_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chain := NewChain(&scriptedCompleter{name: ProviderOpenAI, text: "never"})

	_, err := chain.Complete(ctx, "question", 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Complete() error = %v, want context.Canceled", err)
	}
}

func TestChain_Provider(t *testing.T) {
	t.Parallel()

	chain := NewChain(
		&scriptedCompleter{name: ProviderGemini},
		&scriptedCompleter{name: ProviderOpenAI},
	)

	if got := chain.Provider(); got != ProviderGemini {
		t.Errorf("Provider() = %q, want %q", got, ProviderGemini)
	}
}

func TestCompleterFunc(t *testing.T) {
	t.Parallel()

	f := CompleterFunc(func(_ context.Context, prompt string, _ float64) (string, error) {
		return "echo: " + prompt, nil
	})

	got, err := f.Complete(context.Background(), "hi", 0.5)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "echo: hi" {
		t.Errorf("Complete() = %q", got)
	}
}
