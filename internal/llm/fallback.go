package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/dut-ailab/advisor-go/internal/errors"
)

// Chain tries each configured completer in order and returns the first
// successful completion. When every provider fails it returns
// ErrLLMUnavailable wrapped around the last error.
type Chain struct {
	completers []Completer
}

// NewChain builds a fallback chain from the given completers.
// Nil entries (disabled providers) are skipped.
func NewChain(completers ...Completer) *Chain {
	chain := &Chain{}
	for _, c := range completers {
		if c != nil {
			chain.completers = append(chain.completers, c)
		}
	}
	return chain
}

// Complete tries each provider in order until one succeeds.
func (c *Chain) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	if c == nil || len(c.completers) == 0 {
		return "", apperrors.ErrLLMUnavailable
	}

	var lastErr error

	for _, completer := range c.completers {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		start := time.Now()
		text, err := completer.Complete(ctx, prompt, temperature)
		if err == nil {
			return text, nil
		}
		lastErr = err

		slog.WarnContext(ctx, "completion provider failed",
			"provider", completer.Provider(),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err)
	}

	return "", fmt.Errorf("%w: %w", apperrors.ErrLLMUnavailable, lastErr)
}

// Provider returns the primary provider, or empty when none is configured.
func (c *Chain) Provider() Provider {
	if c == nil || len(c.completers) == 0 {
		return ""
	}
	return c.completers[0].Provider()
}

// IsEnabled returns true if at least one provider is configured.
func (c *Chain) IsEnabled() bool {
	return c != nil && len(c.completers) > 0
}

// Close closes every completer in the chain.
func (c *Chain) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	for _, completer := range c.completers {
		if err := completer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
