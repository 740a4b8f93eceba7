package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersAll(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m == nil {
		t.Fatal("New() returned nil")
	}

	// Touch one of each family so Gather sees them
	m.RecordClassification("hoi_danh_sach_ctdt", "rule", 0.001)
	m.ExtractionTotal.WithLabelValues("llm", "resolved").Inc()
	m.RecordGraphQuery("program_list", "success", 0.02)
	m.GraphEmptyResultTotal.WithLabelValues("hoi_thong_tin_ctdt").Inc()
	m.RecordLLMRequest("openai", "render", "success", 1.2)
	m.ChatRequestsTotal.WithLabelValues("success").Inc()
	m.ChatDurationSeconds.Observe(1.5)
	m.HTTPErrorsTotal.WithLabelValues("/chat", "500").Inc()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if len(families) < 10 {
		t.Errorf("expected at least 10 metric families, got %d", len(families))
	}
}

func TestRecordClassificationDefaultCountsFallback(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordClassification("hoi_dieu_kien_tot_nghiep_chung", "default", 0.5)
	m.RecordClassification("hoi_danh_sach_ctdt", "rule", 0.001)

	got := testutil.ToFloat64(m.IntentFallbackDefaultTotal)
	if got != 1 {
		t.Errorf("fallback default counter = %v, want 1", got)
	}
}

func TestNilReceiverSafe(t *testing.T) {
	var m *Metrics

	// Should not panic
	m.RecordClassification("x", "rule", 0)
	m.RecordGraphQuery("x", "success", 0)
	m.RecordLLMRequest("openai", "classify", "error", 0)
}
