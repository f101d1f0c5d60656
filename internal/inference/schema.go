package inference

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema is a compiled JSON Schema for one task's response shape.
type Schema struct {
	doc      map[string]any
	compiled *jsonschema.Schema
}

// CompileSchema compiles a JSON-Schema document expressed as a generic map.
func CompileSchema(name string, doc map[string]any) (*Schema, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	url := name + ".json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{doc: doc, compiled: compiled}, nil
}

// Validate checks any Go value by round-tripping it through JSON first.
func (s *Schema) Validate(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal value: %w", err)
	}
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return fmt.Errorf("unmarshal value: %w", err)
	}
	if err := s.compiled.Validate(generic); err != nil {
		return fmt.Errorf("value does not match schema: %w", err)
	}
	return nil
}

// Doc returns the schema document for prompt rendering.
func (s *Schema) Doc() map[string]any {
	return s.doc
}

// ── Task schemas ─────────────────────────────────────

func scoreProp() map[string]any {
	return map[string]any{"type": "integer", "minimum": 0, "maximum": 100}
}

func stringArray() map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
}

func sectionProp() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"score", "tips"},
		"properties": map[string]any{
			"score": scoreProp(),
			"tips": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"type", "tip"},
					"properties": map[string]any{
						"type": map[string]any{"enum": []string{"good", "improve"}},
						"tip":  map[string]any{"type": "string"},
					},
				},
			},
		},
	}
}

func resumeAnalysisSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"required": []string{
			"overallScore", "summary", "headPoints", "missingKeywords",
			"ATS", "content", "structure", "skills", "toneAndStyle",
		},
		"properties": map[string]any{
			"companyName":  map[string]any{"type": "string"},
			"jobTitle":     map[string]any{"type": "string"},
			"overallScore": scoreProp(),
			"summary":      map[string]any{"type": "string"},
			"headPoints":   stringArray(),
			"missingKeywords": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 5,
				"maxItems": 5,
			},
			"ATS":          sectionProp(),
			"content":      sectionProp(),
			"structure":    sectionProp(),
			"skills":       sectionProp(),
			"toneAndStyle": sectionProp(),
		},
	}
}

func roadmapSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"roadmap"},
		"properties": map[string]any{
			"roadmap": map[string]any{
				"type":     "array",
				"minItems": RoadmapSteps,
				"maxItems": RoadmapSteps,
				"items": map[string]any{
					"type":     "object",
					"required": []string{"step", "description", "resources"},
					"properties": map[string]any{
						"step":        map[string]any{"type": "string", "minLength": 1},
						"description": map[string]any{"type": "string"},
						"resources":   stringArray(),
					},
				},
			},
		},
	}
}

func searchParamsSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"job_title", "location"},
		"properties": map[string]any{
			"job_title": map[string]any{"type": "string", "minLength": 1},
			"location":  map[string]any{"type": "string", "minLength": 1},
		},
	}
}

func linkedInSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"headlines", "about", "skills"},
		"properties": map[string]any{
			"headlines": stringArray(),
			"about":     map[string]any{"type": "string"},
			"skills":    stringArray(),
		},
	}
}
