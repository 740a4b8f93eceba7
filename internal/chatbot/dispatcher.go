// Package chatbot wires the question pipeline together: normalize,
// classify, extract, query the graph, render. The intent→handler table is
// total and fixed at construction; every classified question has exactly
// one handler.
package chatbot

import (
	"context"
	"time"

	"github.com/dut-ailab/advisor-go/internal/graph"
	"github.com/dut-ailab/advisor-go/internal/logger"
	"github.com/dut-ailab/advisor-go/internal/metrics"
	"github.com/dut-ailab/advisor-go/internal/nlu"
	"github.com/dut-ailab/advisor-go/internal/render"
)

// Store is the slice of the graph layer the handlers query.
type Store interface {
	GraduationAll(ctx context.Context) ([]graph.Record, error)
	GraduationByProgram(ctx context.Context, program string) ([]graph.Record, error)
	LanguageAll(ctx context.Context) ([]graph.Record, error)
	LanguageByProgram(ctx context.Context, program string) ([]graph.Record, error)
	LanguageScore(ctx context.Context, question string) ([]graph.CertRequirement, string, error)
	Framework(ctx context.Context) ([]graph.Record, error)
	ProgramDetail(ctx context.Context, program string) (*graph.ProgramDetail, error)
	ProgramList(ctx context.Context) ([]graph.Record, error)
	Prerequisites(ctx context.Context, program string) (*graph.CoursePairs, error)
	Corequisites(ctx context.Context, program string) (*graph.CoursePairs, error)
}

// Extractor resolves entity names from the original question.
type Extractor interface {
	Extract(ctx context.Context, question string) nlu.Entities
}

// Classifier assigns an intent to a question.
type Classifier interface {
	Classify(ctx context.Context, normalized, original string) nlu.Intent
}

// Result is one answered question.
type Result struct {
	Intent   nlu.Intent
	Reply    string
	NotFound bool
}

type question struct {
	original   string
	normalized string
}

type handlerFunc func(ctx context.Context, q question) (Result, error)

// Pipeline answers questions end to end.
type Pipeline struct {
	classifier Classifier
	extractor  Extractor
	store      Store
	renderer   render.Renderer
	handlers   map[nlu.Intent]handlerFunc
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

// New builds the pipeline and its handler table.
func New(classifier Classifier, extractor Extractor, store Store, renderer render.Renderer, log *logger.Logger, m *metrics.Metrics) *Pipeline {
	p := &Pipeline{
		classifier: classifier,
		extractor:  extractor,
		store:      store,
		renderer:   renderer,
		logger:     log,
		metrics:    m,
	}
	p.handlers = map[nlu.Intent]handlerFunc{
		nlu.IntentGraduationGeneral: p.handleGraduationGeneral,
		nlu.IntentGraduationProgram: p.handleGraduationProgram,
		nlu.IntentLanguageGeneral:   p.handleLanguageGeneral,
		nlu.IntentLanguageProgram:   p.handleLanguageProgram,
		nlu.IntentLanguageScore:     p.handleLanguageScore,
		nlu.IntentLanguageFramework: p.handleFramework,
		nlu.IntentProgramInfo:       p.handleProgramInfo,
		nlu.IntentProgramList:       p.handleProgramList,
		nlu.IntentPrerequisite:      p.handlePrerequisites,
		nlu.IntentCorequisite:       p.handleCorequisites,
	}
	return p
}

// Answer runs one question through the full pipeline. An error means the
// graph or the renderer failed; everything the NLU layer can get wrong is
// absorbed before this point.
func (p *Pipeline) Answer(ctx context.Context, original string) (Result, error) {
	start := time.Now()

	normalized := nlu.Normalize(original)
	intent := p.classifier.Classify(ctx, normalized, original)

	if p.logger != nil {
		p.logger.WithIntent(string(intent)).WithField("normalized", normalized).Debug("question classified")
	}

	handler, ok := p.handlers[intent]
	if !ok {
		// Unreachable through Classify, which is total over the ten intents.
		handler = p.handleGraduationGeneral
		intent = nlu.IntentGraduationGeneral
	}

	res, err := handler(ctx, question{original: original, normalized: normalized})
	res.Intent = intent

	p.observe(intent, res, err, time.Since(start).Seconds())
	return res, err
}

func (p *Pipeline) observe(intent nlu.Intent, res Result, err error, seconds float64) {
	if p.metrics == nil {
		return
	}
	status := "success"
	switch {
	case err != nil:
		status = "error"
	case res.NotFound:
		status = "not_found"
		p.metrics.GraphEmptyResultTotal.WithLabelValues(string(intent)).Inc()
	}
	p.metrics.ChatRequestsTotal.WithLabelValues(status).Inc()
	p.metrics.ChatDurationSeconds.Observe(seconds)
}

// resolveProgram recovers the program name from the original question. The
// normalized form is useless here: normalization deliberately drops program
// names.
func (p *Pipeline) resolveProgram(ctx context.Context, q question) string {
	return p.extractor.Extract(ctx, q.original).Program
}

func notFound(message string) Result {
	return Result{Reply: message, NotFound: true}
}

func (p *Pipeline) handleGraduationGeneral(ctx context.Context, q question) (Result, error) {
	records, err := p.store.GraduationAll(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(records) == 0 {
		return notFound(msgNoGraduationData), nil
	}
	reply, err := p.renderer.GraduationGeneral(ctx, records, q.normalized)
	return Result{Reply: reply}, err
}

func (p *Pipeline) handleGraduationProgram(ctx context.Context, q question) (Result, error) {
	program := p.resolveProgram(ctx, q)
	if program == "" {
		return notFound(msgProgramUnresolved), nil
	}
	records, err := p.store.GraduationByProgram(ctx, program)
	if err != nil {
		return Result{}, err
	}
	if len(records) == 0 {
		return notFound(msgNoGraduationForProgram), nil
	}
	reply, err := p.renderer.GraduationProgram(ctx, records[0], q.original)
	return Result{Reply: reply}, err
}

func (p *Pipeline) handleLanguageGeneral(ctx context.Context, q question) (Result, error) {
	records, err := p.store.LanguageAll(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(records) == 0 {
		return notFound(msgNoLanguageData), nil
	}
	reply, err := p.renderer.LanguageGeneral(ctx, records, q.normalized)
	return Result{Reply: reply}, err
}

func (p *Pipeline) handleLanguageProgram(ctx context.Context, q question) (Result, error) {
	program := p.resolveProgram(ctx, q)
	if program == "" {
		return notFound(msgProgramUnresolved), nil
	}
	records, err := p.store.LanguageByProgram(ctx, program)
	if err != nil {
		return Result{}, err
	}
	if len(records) == 0 {
		return notFound(msgNoLanguageForProgram), nil
	}
	reply, err := p.renderer.LanguageProgram(ctx, records[0], q.original)
	return Result{Reply: reply}, err
}

func (p *Pipeline) handleLanguageScore(ctx context.Context, q question) (Result, error) {
	reqs, certificate, err := p.store.LanguageScore(ctx, q.original)
	if err != nil {
		return Result{}, err
	}
	if len(reqs) == 0 {
		return notFound(msgNoScoreData), nil
	}
	reply, err := p.renderer.LanguageScore(ctx, reqs, certificate, q.original)
	return Result{Reply: reply}, err
}

func (p *Pipeline) handleFramework(ctx context.Context, q question) (Result, error) {
	records, err := p.store.Framework(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(records) == 0 {
		return notFound(msgNoFrameworkData), nil
	}
	reply, err := p.renderer.LanguageFramework(ctx, records, q.original)
	return Result{Reply: reply}, err
}

func (p *Pipeline) handleProgramInfo(ctx context.Context, q question) (Result, error) {
	program := p.resolveProgram(ctx, q)
	if program == "" {
		return notFound(msgProgramUnresolved), nil
	}
	detail, err := p.store.ProgramDetail(ctx, program)
	if err != nil {
		return Result{}, err
	}
	if detail == nil {
		return notFound(msgNoProgramInfo), nil
	}
	reply, err := p.renderer.ProgramInfo(ctx, detail, q.original)
	return Result{Reply: reply}, err
}

func (p *Pipeline) handleProgramList(ctx context.Context, q question) (Result, error) {
	records, err := p.store.ProgramList(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(records) == 0 {
		return notFound(msgNoProgramList), nil
	}
	reply, err := p.renderer.ProgramList(ctx, records, q.normalized)
	return Result{Reply: reply}, err
}

func (p *Pipeline) handlePrerequisites(ctx context.Context, q question) (Result, error) {
	program := p.resolveProgram(ctx, q)
	if program == "" {
		return notFound(msgProgramUnresolved), nil
	}
	pairs, err := p.store.Prerequisites(ctx, program)
	if err != nil {
		return Result{}, err
	}
	if pairs == nil || len(pairs.Pairs) == 0 {
		return notFound(msgNoPrerequisiteRelations), nil
	}
	reply, err := p.renderer.Prerequisites(ctx, pairs, q.original)
	return Result{Reply: reply}, err
}

func (p *Pipeline) handleCorequisites(ctx context.Context, q question) (Result, error) {
	program := p.resolveProgram(ctx, q)
	if program == "" {
		return notFound(msgProgramUnresolved), nil
	}
	pairs, err := p.store.Corequisites(ctx, program)
	if err != nil {
		return Result{}, err
	}
	if pairs == nil || len(pairs.Pairs) == 0 {
		return notFound(msgNoCorequisiteRelations), nil
	}
	reply, err := p.renderer.Corequisites(ctx, pairs, q.original)
	return Result{Reply: reply}, err
}
