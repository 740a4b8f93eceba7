package nlu

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/dut-ailab/advisor-go/internal/config"
	"github.com/dut-ailab/advisor-go/internal/llm"
	"github.com/dut-ailab/advisor-go/internal/logger"
	"github.com/dut-ailab/advisor-go/internal/metrics"
	"github.com/dut-ailab/advisor-go/internal/rag"
)

// Entities are the names recovered from a question. An empty field means
// the question did not resolve that entity.
type Entities struct {
	Program  string `json:"program_name"`
	Course   string `json:"course_name"`
	Semester string `json:"semester_name"`
}

// IsEmpty reports whether nothing was resolved.
func (e Entities) IsEmpty() bool {
	return e.Program == "" && e.Course == "" && e.Semester == ""
}

// CatalogProvider is the slice of the graph store the extractor needs.
type CatalogProvider interface {
	// EntityCatalog returns every course, program and semester name.
	EntityCatalog(ctx context.Context) ([]string, error)
	// ProgramNames returns program names only.
	ProgramNames(ctx context.Context) ([]string, error)
	// ResolveProgram full-text matches free text to the best program name.
	ResolveProgram(ctx context.Context, text string) (string, error)
}

// extractionStopwords are stripped from the question before fuzzy program
// matching. Literal substring removal, same mechanics as the normalizer.
var extractionStopwords = []string{
	"chương trình", "ctdt", "ctđt", "ngành",
	"là gì", "giới thiệu", "thuộc khoa nào",
	"học gì", "gồm những gì", "bao gồm",
	"nội dung", "cho mình hỏi", "tư vấn",
}

// Extractor recovers entity names from the original, non-normalized
// question. Extract is total: every failure path degrades to empty
// Entities, never an error.
type Extractor struct {
	strategy  config.ExtractorStrategy
	catalog   CatalogProvider
	completer llm.Completer
	index     *rag.NameIndex
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

// NewExtractor builds an extractor. index and completer may be nil; the
// fuzzy strategy then falls back to the graph full-text index, and the LLM
// strategy degrades to empty entities.
func NewExtractor(strategy config.ExtractorStrategy, catalog CatalogProvider, completer llm.Completer, index *rag.NameIndex, log *logger.Logger, m *metrics.Metrics) *Extractor {
	return &Extractor{
		strategy:  strategy,
		catalog:   catalog,
		completer: completer,
		index:     index,
		logger:    log,
		metrics:   m,
	}
}

// Extract runs the configured strategy against the original question.
func (e *Extractor) Extract(ctx context.Context, question string) Entities {
	switch e.strategy {
	case config.StrategyFuzzy:
		return e.extractFuzzy(ctx, question)
	default:
		return e.extractLLM(ctx, question)
	}
}

// extractFuzzy strips stopwords and takes the single best-ranked program
// name. It never resolves courses or semesters.
func (e *Extractor) extractFuzzy(ctx context.Context, question string) Entities {
	clean := strings.ToLower(question)
	for _, sw := range extractionStopwords {
		clean = strings.ReplaceAll(clean, sw, "")
	}
	clean = strings.TrimSpace(clean)
	if clean == "" {
		clean = question
	}

	if e.index != nil && e.index.IsEnabled() {
		if name, _ := e.index.Best(clean); name != "" {
			e.metrics.RecordExtraction(string(config.StrategyFuzzy), "resolved")
			return Entities{Program: name}
		}
	}

	name, err := e.catalog.ResolveProgram(ctx, clean)
	if err != nil {
		if e.logger != nil {
			e.logger.WithError(err).Warn("fuzzy program resolution failed")
		}
		e.metrics.RecordExtraction(string(config.StrategyFuzzy), "degraded")
		return Entities{}
	}
	if name == "" {
		e.metrics.RecordExtraction(string(config.StrategyFuzzy), "empty")
		return Entities{}
	}

	e.metrics.RecordExtraction(string(config.StrategyFuzzy), "resolved")
	return Entities{Program: name}
}

// extractLLM sends the catalog and question to the model and parses a JSON
// triple out of the response.
func (e *Extractor) extractLLM(ctx context.Context, question string) Entities {
	if e.completer == nil {
		e.metrics.RecordExtraction(string(config.StrategyLLM), "degraded")
		return Entities{}
	}

	catalog, err := e.catalog.EntityCatalog(ctx)
	if err != nil {
		if e.logger != nil {
			e.logger.WithError(err).Warn("entity catalog fetch failed")
		}
		e.metrics.RecordExtraction(string(config.StrategyLLM), "degraded")
		return Entities{}
	}

	raw, err := e.completer.Complete(ctx, extractionPrompt(catalog, question), 0)
	if err != nil {
		if e.logger != nil {
			e.logger.WithError(err).Warn("entity extraction call failed")
		}
		e.metrics.RecordExtraction(string(config.StrategyLLM), "degraded")
		return Entities{}
	}

	var ents Entities
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &ents); err != nil {
		if e.logger != nil {
			e.logger.WithError(err).WithField("response", raw).Warn("entity extraction response is not valid JSON")
		}
		e.metrics.RecordExtraction(string(config.StrategyLLM), "degraded")
		return Entities{}
	}
	ents.clean()

	// The prompt forbids placing a program name in the course field, but the
	// catalogs overlap lexically and the model is not trusted to obey.
	if ents.Course != "" {
		if programs, err := e.catalog.ProgramNames(ctx); err == nil && containsFold(programs, ents.Course) {
			ents.Course = ""
		}
	}

	if ents.IsEmpty() {
		e.metrics.RecordExtraction(string(config.StrategyLLM), "empty")
	} else {
		e.metrics.RecordExtraction(string(config.StrategyLLM), "resolved")
	}
	return ents
}

// clean trims each field and maps the literal string "null" to empty.
func (e *Entities) clean() {
	e.Program = cleanField(e.Program)
	e.Course = cleanField(e.Course)
	e.Semester = cleanField(e.Semester)
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "null") {
		return ""
	}
	return s
}

// stripCodeFence removes a Markdown code fence wrapper if the model added
// one despite the prompt.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```", "")
	return strings.TrimSpace(raw)
}

func containsFold(names []string, target string) bool {
	for _, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), target) {
			return true
		}
	}
	return false
}
