package chatbot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dut-ailab/advisor-go/internal/graph"
	"github.com/dut-ailab/advisor-go/internal/nlu"
)

// fixedClassifier always returns the same intent.
type fixedClassifier struct{ intent nlu.Intent }

func (f fixedClassifier) Classify(context.Context, string, string) nlu.Intent { return f.intent }

// fixedExtractor returns canned entities and records the question it saw.
type fixedExtractor struct {
	entities nlu.Entities
	asked    string
}

func (f *fixedExtractor) Extract(_ context.Context, question string) nlu.Entities {
	f.asked = question
	return f.entities
}

// stubStore serves canned data and records the program it was asked about.
type stubStore struct {
	records    []graph.Record
	reqs       []graph.CertRequirement
	cert       string
	detail     *graph.ProgramDetail
	pairs      *graph.CoursePairs
	err        error
	gotProgram string
}

func (s *stubStore) GraduationAll(context.Context) ([]graph.Record, error) {
	return s.records, s.err
}

func (s *stubStore) GraduationByProgram(_ context.Context, program string) ([]graph.Record, error) {
	s.gotProgram = program
	return s.records, s.err
}

func (s *stubStore) LanguageAll(context.Context) ([]graph.Record, error) {
	return s.records, s.err
}

func (s *stubStore) LanguageByProgram(_ context.Context, program string) ([]graph.Record, error) {
	s.gotProgram = program
	return s.records, s.err
}

func (s *stubStore) LanguageScore(context.Context, string) ([]graph.CertRequirement, string, error) {
	return s.reqs, s.cert, s.err
}

func (s *stubStore) Framework(context.Context) ([]graph.Record, error) {
	return s.records, s.err
}

func (s *stubStore) ProgramDetail(_ context.Context, program string) (*graph.ProgramDetail, error) {
	s.gotProgram = program
	return s.detail, s.err
}

func (s *stubStore) ProgramList(context.Context) ([]graph.Record, error) {
	return s.records, s.err
}

func (s *stubStore) Prerequisites(_ context.Context, program string) (*graph.CoursePairs, error) {
	s.gotProgram = program
	return s.pairs, s.err
}

func (s *stubStore) Corequisites(_ context.Context, program string) (*graph.CoursePairs, error) {
	s.gotProgram = program
	return s.pairs, s.err
}

// stubRenderer echoes a fixed reply and counts invocations.
type stubRenderer struct {
	reply string
	err   error
	calls int
}

func (r *stubRenderer) render() (string, error) {
	r.calls++
	return r.reply, r.err
}

func (r *stubRenderer) GraduationGeneral(context.Context, []graph.Record, string) (string, error) {
	return r.render()
}

func (r *stubRenderer) GraduationProgram(context.Context, graph.Record, string) (string, error) {
	return r.render()
}

func (r *stubRenderer) LanguageGeneral(context.Context, []graph.Record, string) (string, error) {
	return r.render()
}

func (r *stubRenderer) LanguageProgram(context.Context, graph.Record, string) (string, error) {
	return r.render()
}

func (r *stubRenderer) LanguageScore(context.Context, []graph.CertRequirement, string, string) (string, error) {
	return r.render()
}

func (r *stubRenderer) LanguageFramework(context.Context, []graph.Record, string) (string, error) {
	return r.render()
}

func (r *stubRenderer) ProgramInfo(context.Context, *graph.ProgramDetail, string) (string, error) {
	return r.render()
}

func (r *stubRenderer) ProgramList(context.Context, []graph.Record, string) (string, error) {
	return r.render()
}

func (r *stubRenderer) Prerequisites(context.Context, *graph.CoursePairs, string) (string, error) {
	return r.render()
}

func (r *stubRenderer) Corequisites(context.Context, *graph.CoursePairs, string) (string, error) {
	return r.render()
}

func newPipeline(intent nlu.Intent, extractor *fixedExtractor, store *stubStore, renderer *stubRenderer) *Pipeline {
	if extractor == nil {
		extractor = &fixedExtractor{}
	}
	return New(fixedClassifier{intent: intent}, extractor, store, renderer, nil, nil)
}

func TestAnswer_RendersWhenDataExists(t *testing.T) {
	store := &stubStore{records: []graph.Record{{"dieu_kien_chung": "đủ tín chỉ"}}}
	renderer := &stubRenderer{reply: "câu trả lời học vụ"}
	p := newPipeline(nlu.IntentGraduationGeneral, nil, store, renderer)

	res, err := p.Answer(context.Background(), "Điều kiện tốt nghiệp là gì?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if res.Reply != "câu trả lời học vụ" || res.NotFound {
		t.Errorf("Result = %+v", res)
	}
	if res.Intent != nlu.IntentGraduationGeneral {
		t.Errorf("Intent = %q", res.Intent)
	}
}

func TestAnswer_EmptyResultSkipsRenderer(t *testing.T) {
	tests := []struct {
		name    string
		intent  nlu.Intent
		program string
		message string
	}{
		{"graduation general", nlu.IntentGraduationGeneral, "", msgNoGraduationData},
		{"graduation program", nlu.IntentGraduationProgram, "CNTT", msgNoGraduationForProgram},
		{"language general", nlu.IntentLanguageGeneral, "", msgNoLanguageData},
		{"language program", nlu.IntentLanguageProgram, "CNTT", msgNoLanguageForProgram},
		{"language score", nlu.IntentLanguageScore, "", msgNoScoreData},
		{"framework", nlu.IntentLanguageFramework, "", msgNoFrameworkData},
		{"program info", nlu.IntentProgramInfo, "CNTT", msgNoProgramInfo},
		{"program list", nlu.IntentProgramList, "", msgNoProgramList},
		{"prerequisites", nlu.IntentPrerequisite, "CNTT", msgNoPrerequisiteRelations},
		{"corequisites", nlu.IntentCorequisite, "CNTT", msgNoCorequisiteRelations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubStore{}
			renderer := &stubRenderer{reply: "không được gọi"}
			extractor := &fixedExtractor{entities: nlu.Entities{Program: tt.program}}
			p := newPipeline(tt.intent, extractor, store, renderer)

			res, err := p.Answer(context.Background(), "câu hỏi")
			if err != nil {
				t.Fatalf("Answer: %v", err)
			}
			if !res.NotFound || res.Reply != tt.message {
				t.Errorf("Result = %+v, want not-found %q", res, tt.message)
			}
			if renderer.calls != 0 {
				t.Errorf("renderer invoked %d times on empty data", renderer.calls)
			}
		})
	}
}

func TestAnswer_UnresolvedProgramShortCircuits(t *testing.T) {
	scoped := []nlu.Intent{
		nlu.IntentGraduationProgram,
		nlu.IntentLanguageProgram,
		nlu.IntentProgramInfo,
		nlu.IntentPrerequisite,
		nlu.IntentCorequisite,
	}

	for _, intent := range scoped {
		t.Run(string(intent), func(t *testing.T) {
			store := &stubStore{records: []graph.Record{{"ten_chuong_trinh": "CNTT"}}}
			renderer := &stubRenderer{reply: "không được gọi"}
			p := newPipeline(intent, &fixedExtractor{}, store, renderer)

			res, err := p.Answer(context.Background(), "điều kiện tốt nghiệp của ngành nào đó")
			if err != nil {
				t.Fatalf("Answer: %v", err)
			}
			if res.Reply != msgProgramUnresolved {
				t.Errorf("Reply = %q", res.Reply)
			}
			if store.gotProgram != "" {
				t.Errorf("store was queried with %q despite unresolved program", store.gotProgram)
			}
			if renderer.calls != 0 {
				t.Errorf("renderer invoked despite unresolved program")
			}
		})
	}
}

// Program-scoped handlers must resolve entities from the original question,
// not the normalized one, because normalization drops program names.
func TestAnswer_ExtractionSeesOriginalQuestion(t *testing.T) {
	store := &stubStore{records: []graph.Record{{"ten_chuong_trinh": "Công nghệ thông tin"}}}
	renderer := &stubRenderer{reply: "ok"}
	extractor := &fixedExtractor{entities: nlu.Entities{Program: "Công nghệ thông tin"}}
	p := newPipeline(nlu.IntentLanguageProgram, extractor, store, renderer)

	original := "Chuẩn ngoại ngữ đầu ra của Công nghệ thông tin?"
	if _, err := p.Answer(context.Background(), original); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if extractor.asked != original {
		t.Errorf("extractor saw %q, want the original question", extractor.asked)
	}
	if store.gotProgram != "Công nghệ thông tin" {
		t.Errorf("store queried with %q", store.gotProgram)
	}
}

func TestAnswer_GraphErrorPropagates(t *testing.T) {
	graphErr := errors.New("connection refused")
	store := &stubStore{err: graphErr}
	renderer := &stubRenderer{reply: "không được gọi"}
	p := newPipeline(nlu.IntentProgramList, nil, store, renderer)

	_, err := p.Answer(context.Background(), "có những ngành nào")
	if !errors.Is(err, graphErr) {
		t.Fatalf("err = %v, want the graph error", err)
	}
	if renderer.calls != 0 {
		t.Errorf("renderer invoked despite graph error")
	}
}

func TestAnswer_RendererErrorPropagates(t *testing.T) {
	store := &stubStore{records: []graph.Record{{"ten_chuong_trinh": "CNTT"}}}
	renderer := &stubRenderer{err: errors.New("model down")}
	p := newPipeline(nlu.IntentProgramList, nil, store, renderer)

	if _, err := p.Answer(context.Background(), "có những ngành nào"); err == nil {
		t.Fatal("expected renderer error")
	}
}

func TestHandlerTable_CoversEveryIntent(t *testing.T) {
	p := newPipeline(nlu.IntentGraduationGeneral, nil, &stubStore{}, &stubRenderer{})
	for _, intent := range nlu.AllIntents {
		if _, ok := p.handlers[intent]; !ok {
			t.Errorf("intent %q has no handler", intent)
		}
	}
	if len(p.handlers) != len(nlu.AllIntents) {
		t.Errorf("handler table has %d entries, want %d", len(p.handlers), len(nlu.AllIntents))
	}
}

func TestAnswer_ScoreHandlerPassesCertificate(t *testing.T) {
	store := &stubStore{
		reqs: []graph.CertRequirement{{Program: "CNTT", Language: "TiengAnh", Score: 450}},
		cert: "TOEIC",
	}
	renderer := &stubRenderer{reply: "TOEIC 450"}
	p := newPipeline(nlu.IntentLanguageScore, nil, store, renderer)

	res, err := p.Answer(context.Background(), "toeic bao nhiêu điểm thì ra trường")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !strings.Contains(res.Reply, "TOEIC") {
		t.Errorf("Reply = %q", res.Reply)
	}
}
