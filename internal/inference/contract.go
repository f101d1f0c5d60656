package inference

import (
	"fmt"
	"strings"

	"github.com/yourusername/resumeiq-api/internal/model"
	"github.com/yourusername/resumeiq-api/internal/provider"
)

// TaskContract pairs a prompt template, an expected response shape and a
// fallback payload for one task kind. Contracts are never mutated.
type TaskContract struct {
	Kind     TaskKind
	MaxInput int
	// MinInput is the shortest acceptable prepared subject; 0 disables the check.
	MinInput int
	Shape    provider.Shape
	Prompt   func(TaskRequest) string
	// Schema is nil for free-form text tasks.
	Schema   *Schema
	Fallback func(TaskRequest) any
	// ProviderOrder names providers to try before the rest of the table.
	ProviderOrder []string
	// RecoverBeforeAccept makes the cascade advance when a provider's
	// answer cannot be recovered, instead of stopping at the first answer.
	RecoverBeforeAccept bool

	normalize func(payload []byte, req TaskRequest) (any, error)
}

// Decode turns a raw provider answer into the task's typed value.
// Any failure wraps ErrRecoveryFailed.
func (c *TaskContract) Decode(raw string, req TaskRequest) (any, error) {
	var payload []byte
	if c.Shape == provider.ShapeJSON {
		b, ok := RecoverBytes(raw)
		if !ok {
			return nil, ErrRecoveryFailed
		}
		payload = b
	} else {
		payload = []byte(strings.TrimSpace(raw))
		if len(payload) == 0 {
			return nil, ErrRecoveryFailed
		}
	}

	value, err := c.normalize(payload, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecoveryFailed, err)
	}
	if c.Schema != nil {
		if err := c.Schema.Validate(value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRecoveryFailed, err)
		}
	}
	return value, nil
}

// Registry resolves task kinds to contracts. Safe for concurrent reads.
type Registry struct {
	contracts map[TaskKind]*TaskContract
}

// NewRegistry compiles every task schema. An error here is a programming bug.
func NewRegistry() (*Registry, error) {
	schemas := map[TaskKind]map[string]any{
		TaskResumeAnalysis:   resumeAnalysisSchema(),
		TaskRoadmap:          roadmapSchema(),
		TaskSearchParams:     searchParamsSchema(),
		TaskLinkedInOptimize: linkedInSchema(),
	}
	compiled := make(map[TaskKind]*Schema, len(schemas))
	for kind, doc := range schemas {
		s, err := CompileSchema(strings.ToLower(string(kind)), doc)
		if err != nil {
			return nil, fmt.Errorf("compiling %s schema: %w", kind, err)
		}
		compiled[kind] = s
	}

	contracts := []*TaskContract{
		{
			Kind:      TaskResumeAnalysis,
			MaxInput:  MaxResumeChars,
			MinInput:  MinInputLength,
			Shape:     provider.ShapeJSON,
			Prompt:    buildResumeAnalysisPrompt,
			Schema:    compiled[TaskResumeAnalysis],
			Fallback:  resumeAnalysisFallback,
			normalize: normalizeResumeAnalysis,
		},
		{
			Kind:      TaskRoadmap,
			MaxInput:  MaxRoadmapChars,
			MinInput:  MinInputLength,
			Shape:     provider.ShapeJSON,
			Prompt:    buildRoadmapPrompt,
			Schema:    compiled[TaskRoadmap],
			Fallback:  roadmapFallback,
			normalize: normalizeRoadmap,
		},
		{
			Kind:                TaskSearchParams,
			MaxInput:            MaxHeaderChars,
			MinInput:            MinInputLength,
			Shape:               provider.ShapeJSON,
			Prompt:              buildSearchParamsPrompt,
			Schema:              compiled[TaskSearchParams],
			Fallback:            searchParamsFallback,
			ProviderOrder:       []string{"groq", "gemini"},
			RecoverBeforeAccept: true,
			normalize:           normalizeSearchParams,
		},
		{
			Kind:      TaskLinkedInOptimize,
			MaxInput:  MaxLinkedInChars,
			MinInput:  MinInputLength,
			Shape:     provider.ShapeJSON,
			Prompt:    buildLinkedInPrompt,
			Schema:    compiled[TaskLinkedInOptimize],
			Fallback:  linkedInFallback,
			normalize: normalizeLinkedIn,
		},
		{
			Kind:     TaskCodeGenerate,
			Shape:    provider.ShapeText,
			Prompt:   buildCodeGeneratePrompt,
			Fallback: codeGenerateFallback,
			normalize: func(payload []byte, _ TaskRequest) (any, error) {
				return model.CodeReview{Mode: model.CodeModeGenerate, Text: string(payload)}, nil
			},
		},
		{
			Kind:     TaskCodeReview,
			MaxInput: MaxCodeChars,
			Shape:    provider.ShapeText,
			Prompt:   buildCodeReviewPrompt,
			Fallback: codeReviewFallback,
			normalize: func(payload []byte, _ TaskRequest) (any, error) {
				return model.CodeReview{Mode: model.CodeModeReview, Text: string(payload)}, nil
			},
		},
	}

	r := &Registry{contracts: make(map[TaskKind]*TaskContract, len(contracts))}
	for _, c := range contracts {
		r.contracts[c.Kind] = c
	}
	return r, nil
}

// Resolve returns the contract for kind or ErrUnknownTask.
func (r *Registry) Resolve(kind TaskKind) (*TaskContract, error) {
	c, ok := r.contracts[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, kind)
	}
	return c, nil
}
