package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/dut-ailab/advisor-go/internal/metrics"
)

func TestWithMetrics_RecordsSuccess(t *testing.T) {
	t.Parallel()

	m := metrics.New(prometheus.NewRegistry())
	inner := &scriptedCompleter{name: ProviderOpenAI, text: "ok"}

	c := WithMetrics(inner, m, "render")
	if _, err := c.Complete(context.Background(), "p", 0.7); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	got := testutil.ToFloat64(m.LLMRequestsTotal.WithLabelValues("openai", "render", "success"))
	if got != 1 {
		t.Errorf("llm_requests_total{success} = %v, want 1", got)
	}
}

func TestWithMetrics_RecordsError(t *testing.T) {
	t.Parallel()

	m := metrics.New(prometheus.NewRegistry())
	inner := &scriptedCompleter{name: ProviderGemini, err: errors.New("boom")}

	c := WithMetrics(inner, m, "classify")
	if _, err := c.Complete(context.Background(), "p", 0); err == nil {
		t.Fatal("Complete() error = nil, want error")
	}

	got := testutil.ToFloat64(m.LLMRequestsTotal.WithLabelValues("gemini", "classify", "error"))
	if got != 1 {
		t.Errorf("llm_requests_total{error} = %v, want 1", got)
	}
}

func TestWithMetrics_NilMetrics(t *testing.T) {
	t.Parallel()

	c := WithMetrics(&scriptedCompleter{name: ProviderOpenAI, text: "ok"}, nil, "extract")
	if _, err := c.Complete(context.Background(), "p", 0); err != nil {
		t.Errorf("Complete() error = %v with nil metrics", err)
	}
}

type deadlineProbe struct {
	scriptedCompleter
	hadDeadline bool
}

func (d *deadlineProbe) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	_, d.hadDeadline = ctx.Deadline()
	return d.scriptedCompleter.Complete(ctx, prompt, temperature)
}

func TestWithTimeout_SetsDeadline(t *testing.T) {
	t.Parallel()

	probe := &deadlineProbe{scriptedCompleter: scriptedCompleter{name: ProviderOpenAI, text: "ok"}}

	c := WithTimeout(probe, 30*time.Second)
	if _, err := c.Complete(context.Background(), "p", 0); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if !probe.hadDeadline {
		t.Error("inner completer should see a deadline")
	}
}

func TestWithTimeout_NonPositiveIsPassThrough(t *testing.T) {
	t.Parallel()

	inner := &scriptedCompleter{name: ProviderOpenAI, text: "ok"}
	if c := WithTimeout(inner, 0); c != Completer(inner) {
		t.Error("zero timeout should return the completer unchanged")
	}
}
