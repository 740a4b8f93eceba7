// Package render turns graph query results into student-facing Vietnamese
// answers. The LLM renderer hands the model pre-formatted data together
// with strict layout rules; it never invents facts because the dispatcher
// only calls it with non-empty result sets.
package render

import (
	"context"
	"strings"

	"github.com/dut-ailab/advisor-go/internal/graph"
	"github.com/dut-ailab/advisor-go/internal/llm"
	"github.com/dut-ailab/advisor-go/internal/logger"
)

// Renderer produces the final answer text for each intent.
type Renderer interface {
	GraduationGeneral(ctx context.Context, records []graph.Record, question string) (string, error)
	GraduationProgram(ctx context.Context, record graph.Record, question string) (string, error)
	LanguageGeneral(ctx context.Context, records []graph.Record, question string) (string, error)
	LanguageProgram(ctx context.Context, record graph.Record, question string) (string, error)
	LanguageScore(ctx context.Context, reqs []graph.CertRequirement, certificate, question string) (string, error)
	LanguageFramework(ctx context.Context, records []graph.Record, question string) (string, error)
	ProgramInfo(ctx context.Context, detail *graph.ProgramDetail, question string) (string, error)
	ProgramList(ctx context.Context, records []graph.Record, question string) (string, error)
	Prerequisites(ctx context.Context, pairs *graph.CoursePairs, question string) (string, error)
	Corequisites(ctx context.Context, pairs *graph.CoursePairs, question string) (string, error)
}

// Rendering temperatures. The two graduation answers tolerate a little
// phrasing freedom; everything else is asked for verbatim restructuring.
const (
	tempGraduationGeneral = 0.2
	tempGraduationProgram = 0.3
	tempStrict            = 0
)

// LLMRenderer renders answers through a chat completion model.
type LLMRenderer struct {
	completer llm.Completer
	logger    *logger.Logger
}

// NewLLMRenderer builds a renderer over the given completer.
func NewLLMRenderer(completer llm.Completer, log *logger.Logger) *LLMRenderer {
	return &LLMRenderer{completer: completer, logger: log}
}

func (r *LLMRenderer) complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	text, err := r.completer.Complete(ctx, prompt, temperature)
	if err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Warn("answer rendering failed")
		}
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// GraduationGeneral pre-formats the campus-wide graduation conditions and
// asks the model to present them. If the model is unavailable the formatted
// block itself is already a valid answer, so it is returned as-is.
func (r *LLMRenderer) GraduationGeneral(ctx context.Context, records []graph.Record, question string) (string, error) {
	formatted := formatGraduationGeneral(records)
	text, err := r.complete(ctx, graduationGeneralPrompt(formatted, question), tempGraduationGeneral)
	if err != nil {
		return formatted, nil
	}
	return text, nil
}

func (r *LLMRenderer) GraduationProgram(ctx context.Context, record graph.Record, question string) (string, error) {
	return r.complete(ctx, graduationProgramPrompt(asJSON(record), question), tempGraduationProgram)
}

func (r *LLMRenderer) LanguageGeneral(ctx context.Context, records []graph.Record, question string) (string, error) {
	return r.complete(ctx, languageGeneralPrompt(formatLanguageGeneral(records)), tempStrict)
}

func (r *LLMRenderer) LanguageProgram(ctx context.Context, record graph.Record, question string) (string, error) {
	return r.complete(ctx, languageProgramPrompt(formatLanguageProgram(record)), tempStrict)
}

func (r *LLMRenderer) LanguageScore(ctx context.Context, reqs []graph.CertRequirement, certificate, question string) (string, error) {
	return r.complete(ctx, languageScorePrompt(asJSON(reqs), question), tempStrict)
}

func (r *LLMRenderer) LanguageFramework(ctx context.Context, records []graph.Record, question string) (string, error) {
	return r.complete(ctx, frameworkPrompt(asJSON(records), question), tempStrict)
}

func (r *LLMRenderer) ProgramInfo(ctx context.Context, detail *graph.ProgramDetail, question string) (string, error) {
	return r.complete(ctx, programInfoPrompt(asJSON(detail), question), tempStrict)
}

func (r *LLMRenderer) ProgramList(ctx context.Context, records []graph.Record, question string) (string, error) {
	return r.complete(ctx, programListPrompt(asJSON(records), question), tempStrict)
}

func (r *LLMRenderer) Prerequisites(ctx context.Context, pairs *graph.CoursePairs, question string) (string, error) {
	return r.complete(ctx, prerequisitePrompt(pairs.Program, asJSON(pairs.Pairs), question), tempStrict)
}

func (r *LLMRenderer) Corequisites(ctx context.Context, pairs *graph.CoursePairs, question string) (string, error) {
	return r.complete(ctx, corequisitePrompt(pairs.Program, asJSON(pairs.Pairs), question), tempStrict)
}
