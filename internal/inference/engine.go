package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeiq-api/internal/model"
	"github.com/yourusername/resumeiq-api/internal/provider"
)

// Outcome says where a Result's value came from.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeProviderError
	OutcomeParseFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeProviderError:
		return "provider_error"
	case OutcomeParseFailure:
		return "parse_failure"
	}
	return "unknown"
}

// Result carries a task value together with how it was obtained.
// A degraded Result holds the task's fallback payload.
type Result[T any] struct {
	Value    T
	Outcome  Outcome
	Provider string
	Attempts []Attempt
}

func (r Result[T]) Degraded() bool { return r.Outcome != OutcomeOK }

// Engine runs task requests through the provider cascade. It is immutable
// after construction and safe for concurrent use.
type Engine struct {
	registry *Registry
	cascade  *Cascade
}

// NewEngine builds the contract registry and a cascade over descs.
func NewEngine(descs []provider.Descriptor) (*Engine, error) {
	reg, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	return &Engine{registry: reg, cascade: NewCascade(descs)}, nil
}

// Providers lists provider names in cascade order.
func (e *Engine) Providers() []string {
	return e.cascade.Names()
}

// Run executes one request. The only errors returned are ErrInputTooShort
// and ErrUnknownTask; provider and parse failures yield a degraded Result.
func (e *Engine) Run(ctx context.Context, req TaskRequest) (Result[any], error) {
	c, err := e.registry.Resolve(req.Kind)
	if err != nil {
		return Result[any]{}, err
	}

	prepared := Prepare(req.Subject, c.MaxInput)
	if c.MinInput > 0 && len(prepared) < c.MinInput {
		return Result[any]{}, fmt.Errorf("%w: %d chars, need %d", ErrInputTooShort, len(prepared), c.MinInput)
	}
	preq := req
	preq.Subject = prepared

	opts := []ExecOption{WithTask(c.Kind), WithOrder(c.ProviderOrder...)}
	if c.RecoverBeforeAccept {
		opts = append(opts, WithAccept(func(raw string) bool {
			_, err := c.Decode(raw, preq)
			return err == nil
		}))
	}

	out, err := e.cascade.Execute(ctx, c.Prompt(preq), c.Shape, opts...)
	if err != nil {
		return e.degrade(c, preq, out, OutcomeProviderError, err), nil
	}

	value, err := c.Decode(out.Raw, preq)
	if err != nil {
		return e.degrade(c, preq, out, OutcomeParseFailure, err), nil
	}

	log.Info().
		Str("task", string(c.Kind)).
		Str("provider", out.Provider).
		Int("attempts", len(out.Attempts)).
		Msg("task completed")
	return Result[any]{Value: value, Outcome: OutcomeOK, Provider: out.Provider, Attempts: out.Attempts}, nil
}

func (e *Engine) degrade(c *TaskContract, req TaskRequest, out Output, outcome Outcome, cause error) Result[any] {
	log.Warn().
		Err(cause).
		Str("task", string(c.Kind)).
		Str("outcome", outcome.String()).
		Str("provider", out.Provider).
		Int("attempts", len(out.Attempts)).
		Msg("serving fallback")
	return Result[any]{
		Value:    c.Fallback(req),
		Outcome:  outcome,
		Provider: out.Provider,
		Attempts: out.Attempts,
	}
}

func runAs[T any](ctx context.Context, e *Engine, req TaskRequest) (Result[T], error) {
	r, err := e.Run(ctx, req)
	if err != nil {
		return Result[T]{}, err
	}
	v, ok := r.Value.(T)
	if !ok {
		return Result[T]{}, fmt.Errorf("task %s produced %T", req.Kind, r.Value)
	}
	return Result[T]{Value: v, Outcome: r.Outcome, Provider: r.Provider, Attempts: r.Attempts}, nil
}

// ── Typed entry points ─────────────────────────────────

// AnalyzeResume scores resume text against targetRole.
func (e *Engine) AnalyzeResume(ctx context.Context, text, targetRole string) (Result[model.ResumeAnalysis], error) {
	req := NewTaskRequest(TaskResumeAnalysis, text, map[string]string{ParamTargetRole: targetRole})
	return runAs[model.ResumeAnalysis](ctx, e, req)
}

// ExtractSearchParams reads a job title and location from the resume header.
func (e *Engine) ExtractSearchParams(ctx context.Context, text string) (Result[model.SearchParams], error) {
	return runAs[model.SearchParams](ctx, e, NewTaskRequest(TaskSearchParams, text, nil))
}

// GenerateRoadmap builds a five-step career plan for params.JobTitle.
func (e *Engine) GenerateRoadmap(ctx context.Context, text string, params model.SearchParams) (Result[model.Roadmap], error) {
	req := NewTaskRequest(TaskRoadmap, text, map[string]string{
		ParamJobTitle: params.JobTitle,
		ParamLocation: params.Location,
	})
	return runAs[model.Roadmap](ctx, e, req)
}

// OptimizeLinkedIn drafts headlines, an about section and skills.
func (e *Engine) OptimizeLinkedIn(ctx context.Context, text string) (Result[model.LinkedInProfile], error) {
	return runAs[model.LinkedInProfile](ctx, e, NewTaskRequest(TaskLinkedInOptimize, text, nil))
}

// CodeQuest either generates an interview exercise or reviews a solution,
// depending on what input looks like.
func (e *Engine) CodeQuest(ctx context.Context, input string) (Result[model.CodeReview], error) {
	if IsQuestionRequest(input) {
		req := NewTaskRequest(TaskCodeGenerate, "", map[string]string{ParamLanguage: QuestionLanguage(input)})
		return runAs[model.CodeReview](ctx, e, req)
	}
	return runAs[model.CodeReview](ctx, e, NewTaskRequest(TaskCodeReview, input, nil))
}

// IsQuestionRequest reports whether input asks for a new exercise rather
// than carrying a solution to review.
func IsQuestionRequest(input string) bool {
	trimmed := strings.TrimSpace(input)
	switch {
	case len(trimmed) < MinInputLength:
		return true
	case strings.Contains(input, "Generate Question"), strings.Contains(input, "CMD:GENERATE_QUESTION"):
		return true
	case strings.HasPrefix(trimmed, "// Write your"):
		return true
	}
	return false
}

// QuestionLanguage picks the exercise language requested in input.
func QuestionLanguage(input string) string {
	if strings.Contains(strings.ToLower(input), "python") {
		return "Python"
	}
	return DefaultLanguage
}
