package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Intent classification metrics
	IntentClassifiedTotal      *prometheus.CounterVec
	IntentClassifyDuration     prometheus.Histogram
	IntentFallbackDefaultTotal prometheus.Counter

	// Entity extraction metrics
	ExtractionTotal *prometheus.CounterVec

	// Graph store metrics
	GraphQueriesTotal     *prometheus.CounterVec
	GraphDurationSeconds  *prometheus.HistogramVec
	GraphEmptyResultTotal *prometheus.CounterVec

	// LLM metrics
	LLMRequestsTotal   *prometheus.CounterVec
	LLMDurationSeconds *prometheus.HistogramVec

	// Chat pipeline metrics
	ChatRequestsTotal   *prometheus.CounterVec
	ChatDurationSeconds prometheus.Histogram

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		IntentClassifiedTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_intent_classified_total",
				Help: "Total classified questions by intent and method",
			},
			[]string{"intent", "method"}, // method: rule, llm, default
		),

		IntentClassifyDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "advisor_intent_classify_duration_seconds",
				Help:    "Intent classification duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10},
			},
		),

		IntentFallbackDefaultTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "advisor_intent_fallback_default_total",
				Help: "Questions that fell through to the default intent",
			},
		),

		ExtractionTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_entity_extraction_total",
				Help: "Entity extraction attempts by strategy and outcome",
			},
			[]string{"strategy", "outcome"}, // outcome: resolved, empty, degraded
		),

		GraphQueriesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_graph_queries_total",
				Help: "Graph store queries by name and status",
			},
			[]string{"query", "status"}, // status: success, error
		),

		GraphDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "advisor_graph_duration_seconds",
				Help:    "Graph query duration in seconds by query name",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"query"},
		),

		GraphEmptyResultTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_graph_empty_result_total",
				Help: "Graph queries that returned zero records, by intent",
			},
			[]string{"intent"},
		),

		LLMRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_llm_requests_total",
				Help: "LLM completion requests by provider, purpose and status",
			},
			[]string{"provider", "purpose", "status"}, // purpose: classify, extract, render
		),

		LLMDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "advisor_llm_duration_seconds",
				Help:    "LLM completion duration in seconds by provider",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"provider"},
		),

		ChatRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_chat_requests_total",
				Help: "Chat pipeline requests by final status",
			},
			[]string{"status"}, // status: success, not_found, error
		),

		ChatDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "advisor_chat_duration_seconds",
				Help:    "Full chat pipeline duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_http_errors_total",
				Help: "HTTP error responses by route and status code",
			},
			[]string{"route", "code"},
		),
	}

	return m
}

// RecordClassification records one classification outcome.
func (m *Metrics) RecordClassification(intent, method string, seconds float64) {
	if m == nil {
		return
	}
	m.IntentClassifiedTotal.WithLabelValues(intent, method).Inc()
	m.IntentClassifyDuration.Observe(seconds)
	if method == "default" {
		m.IntentFallbackDefaultTotal.Inc()
	}
}

// RecordExtraction records one entity extraction outcome.
func (m *Metrics) RecordExtraction(strategy, outcome string) {
	if m == nil {
		return
	}
	m.ExtractionTotal.WithLabelValues(strategy, outcome).Inc()
}

// RecordGraphQuery records one graph store round trip.
func (m *Metrics) RecordGraphQuery(query, status string, seconds float64) {
	if m == nil {
		return
	}
	m.GraphQueriesTotal.WithLabelValues(query, status).Inc()
	m.GraphDurationSeconds.WithLabelValues(query).Observe(seconds)
}

// RecordLLMRequest records one LLM completion attempt.
func (m *Metrics) RecordLLMRequest(provider, purpose, status string, seconds float64) {
	if m == nil {
		return
	}
	m.LLMRequestsTotal.WithLabelValues(provider, purpose, status).Inc()
	m.LLMDurationSeconds.WithLabelValues(provider).Observe(seconds)
}
