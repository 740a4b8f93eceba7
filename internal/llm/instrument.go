package llm

import (
	"context"
	"time"

	"github.com/dut-ailab/advisor-go/internal/metrics"
)

// instrumented decorates a Completer with request metrics under a fixed
// purpose label (classify, extract, render).
type instrumented struct {
	inner   Completer
	metrics *metrics.Metrics
	purpose string
}

// WithMetrics wraps a completer so every call is recorded under the given
// purpose label. A nil metrics receiver is safe; recording becomes a no-op.
func WithMetrics(inner Completer, m *metrics.Metrics, purpose string) Completer {
	return &instrumented{inner: inner, metrics: m, purpose: purpose}
}

func (i *instrumented) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	start := time.Now()
	text, err := i.inner.Complete(ctx, prompt, temperature)

	status := "success"
	if err != nil {
		status = "error"
	}
	i.metrics.RecordLLMRequest(string(i.inner.Provider()), i.purpose, status, time.Since(start).Seconds())

	return text, err
}

func (i *instrumented) Provider() Provider { return i.inner.Provider() }

func (i *instrumented) Close() error { return i.inner.Close() }

// timeLimited bounds every completion call with a deadline.
type timeLimited struct {
	inner   Completer
	timeout time.Duration
}

// WithTimeout wraps a completer so each call runs under the given deadline.
// A non-positive timeout returns the completer unchanged.
func WithTimeout(inner Completer, timeout time.Duration) Completer {
	if timeout <= 0 {
		return inner
	}
	return &timeLimited{inner: inner, timeout: timeout}
}

func (t *timeLimited) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Complete(ctx, prompt, temperature)
}

func (t *timeLimited) Provider() Provider { return t.inner.Provider() }

func (t *timeLimited) Close() error { return t.inner.Close() }
