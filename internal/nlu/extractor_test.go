package nlu

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dut-ailab/advisor-go/internal/config"
	"github.com/dut-ailab/advisor-go/internal/rag"
)

// fakeCatalog implements CatalogProvider in memory.
type fakeCatalog struct {
	catalog    []string
	programs   []string
	resolved   string
	err        error
	resolveArg string
}

func (f *fakeCatalog) EntityCatalog(context.Context) ([]string, error) {
	return f.catalog, f.err
}

func (f *fakeCatalog) ProgramNames(context.Context) ([]string, error) {
	return f.programs, f.err
}

func (f *fakeCatalog) ResolveProgram(_ context.Context, text string) (string, error) {
	f.resolveArg = text
	return f.resolved, f.err
}

var testPrograms = []string{
	"Công nghệ thông tin",
	"Công nghệ thông tin Nhật Bản",
	"Kỹ thuật cơ khí",
}

var testCatalog = append([]string{
	"Công nghệ thông tin đại cương",
	"Giải tích 1",
	"Học kỳ 1",
}, testPrograms...)

func TestExtractFuzzy_StripsStopwords(t *testing.T) {
	catalog := &fakeCatalog{resolved: "Kỹ thuật cơ khí"}
	e := NewExtractor(config.StrategyFuzzy, catalog, nil, nil, nil, nil)

	got := e.Extract(context.Background(), "Giới thiệu chương trình ngành kỹ thuật cơ khí là gì")
	if got.Program != "Kỹ thuật cơ khí" {
		t.Fatalf("Program = %q, want %q", got.Program, "Kỹ thuật cơ khí")
	}
	for _, sw := range extractionStopwords {
		if strings.Contains(catalog.resolveArg, sw) {
			t.Errorf("stopword %q survived stripping: %q", sw, catalog.resolveArg)
		}
	}
	if got.Course != "" || got.Semester != "" {
		t.Errorf("fuzzy strategy must not resolve course/semester, got %+v", got)
	}
}

func TestExtractFuzzy_EmptyAfterStrippingUsesOriginal(t *testing.T) {
	catalog := &fakeCatalog{resolved: ""}
	e := NewExtractor(config.StrategyFuzzy, catalog, nil, nil, nil, nil)

	// The question is made of stopwords only.
	e.Extract(context.Background(), "chương trình là gì")
	if strings.TrimSpace(catalog.resolveArg) == "" {
		t.Fatalf("fallback to the original question did not happen, query was %q", catalog.resolveArg)
	}
}

func TestExtractFuzzy_PrefersLocalIndex(t *testing.T) {
	index := rag.NewNameIndex(nil)
	if err := index.Initialize(testPrograms); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	catalog := &fakeCatalog{err: errors.New("graph must not be queried")}
	e := NewExtractor(config.StrategyFuzzy, catalog, nil, index, nil, nil)

	got := e.Extract(context.Background(), "tư vấn ngành kỹ thuật cơ khí")
	if got.Program != "Kỹ thuật cơ khí" {
		t.Errorf("Program = %q, want %q", got.Program, "Kỹ thuật cơ khí")
	}
}

func TestExtractFuzzy_GraphErrorDegrades(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("connection refused")}
	e := NewExtractor(config.StrategyFuzzy, catalog, nil, nil, nil, nil)

	got := e.Extract(context.Background(), "ngành cơ khí học gì")
	if !got.IsEmpty() {
		t.Errorf("expected empty entities on graph error, got %+v", got)
	}
}

func TestExtractLLM_ParsesTriple(t *testing.T) {
	completer := &scriptedCompleter{
		response: `{"program_name": "Công nghệ thông tin", "course_name": "Giải tích 1", "semester_name": "Học kỳ 1"}`,
	}
	catalog := &fakeCatalog{catalog: testCatalog, programs: testPrograms}
	e := NewExtractor(config.StrategyLLM, catalog, completer, nil, nil, nil)

	got := e.Extract(context.Background(), "Giải tích 1 học kỳ 1 ngành CNTT có tiên quyết không")
	want := Entities{Program: "Công nghệ thông tin", Course: "Giải tích 1", Semester: "Học kỳ 1"}
	if got != want {
		t.Errorf("Extract = %+v, want %+v", got, want)
	}

	prompt := completer.prompts[0]
	for _, name := range testCatalog {
		if !strings.Contains(prompt, name) {
			t.Errorf("prompt is missing catalog entry %q", name)
		}
	}
}

func TestExtractLLM_StripsMarkdownFence(t *testing.T) {
	completer := &scriptedCompleter{
		response: "```json\n{\"program_name\": \"Kỹ thuật cơ khí\", \"course_name\": null, \"semester_name\": null}\n```",
	}
	catalog := &fakeCatalog{catalog: testCatalog, programs: testPrograms}
	e := NewExtractor(config.StrategyLLM, catalog, completer, nil, nil, nil)

	got := e.Extract(context.Background(), "điều kiện tốt nghiệp của ngành cơ khí")
	if got.Program != "Kỹ thuật cơ khí" || got.Course != "" || got.Semester != "" {
		t.Errorf("Extract = %+v", got)
	}
}

// A name that belongs to the program catalog must never come back as a
// course, even when the model ignores the prompt rule.
func TestExtractLLM_DropsProgramNameFromCourseField(t *testing.T) {
	completer := &scriptedCompleter{
		response: `{"program_name": null, "course_name": "Công nghệ thông tin", "semester_name": null}`,
	}
	catalog := &fakeCatalog{catalog: testCatalog, programs: testPrograms}
	e := NewExtractor(config.StrategyLLM, catalog, completer, nil, nil, nil)

	got := e.Extract(context.Background(), "Công nghệ thông tin")
	if got.Course != "" {
		t.Errorf("program name leaked into course field: %+v", got)
	}
}

// "Công nghệ thông tin đại cương" is a course, not a program, and must
// survive the post-check even though it shares a prefix with a program.
func TestExtractLLM_KeepsGenuineCourseName(t *testing.T) {
	completer := &scriptedCompleter{
		response: `{"program_name": "Công nghệ thông tin", "course_name": "Công nghệ thông tin đại cương", "semester_name": null}`,
	}
	catalog := &fakeCatalog{catalog: testCatalog, programs: testPrograms}
	e := NewExtractor(config.StrategyLLM, catalog, completer, nil, nil, nil)

	got := e.Extract(context.Background(), "Công nghệ thông tin đại cương thuộc chương trình Công nghệ thông tin?")
	if got.Course != "Công nghệ thông tin đại cương" {
		t.Errorf("genuine course name was dropped: %+v", got)
	}
	if got.Program != "Công nghệ thông tin" {
		t.Errorf("Program = %q", got.Program)
	}
}

func TestExtractLLM_Degrades(t *testing.T) {
	tests := []struct {
		name      string
		completer *scriptedCompleter
		catalog   *fakeCatalog
	}{
		{
			name:      "model error",
			completer: &scriptedCompleter{err: errors.New("timeout")},
			catalog:   &fakeCatalog{catalog: testCatalog},
		},
		{
			name:      "non JSON response",
			completer: &scriptedCompleter{response: "xin lỗi, tôi không hiểu câu hỏi"},
			catalog:   &fakeCatalog{catalog: testCatalog},
		},
		{
			name:      "catalog fetch error",
			completer: &scriptedCompleter{response: `{}`},
			catalog:   &fakeCatalog{err: errors.New("connection refused")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(config.StrategyLLM, tt.catalog, tt.completer, nil, nil, nil)
			got := e.Extract(context.Background(), "một câu hỏi nào đó")
			if !got.IsEmpty() {
				t.Errorf("expected empty entities, got %+v", got)
			}
		})
	}
}

func TestExtractLLM_NullStringsBecomeEmpty(t *testing.T) {
	completer := &scriptedCompleter{
		response: `{"program_name": "null", "course_name": "NULL", "semester_name": " "}`,
	}
	catalog := &fakeCatalog{catalog: testCatalog, programs: testPrograms}
	e := NewExtractor(config.StrategyLLM, catalog, completer, nil, nil, nil)

	got := e.Extract(context.Background(), "câu hỏi")
	if !got.IsEmpty() {
		t.Errorf("expected empty entities, got %+v", got)
	}
}
