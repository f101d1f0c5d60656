package inference

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/resumeiq-api/internal/model"
)

// RoadmapSteps is the fixed roadmap length.
const RoadmapSteps = 5

// MissingKeywordCount is the fixed number of missing keywords reported.
const MissingKeywordCount = 5

var errEmptyPayload = errors.New("payload carries no usable fields")

// Normalizers decode a recovered payload into the task's typed value and
// fill per-field defaults from the fallback. encoding/json matches field
// names case-insensitively, so "Skills" lands in Skills as well.

// rawSection and rawAnalysis keep scores undecoded so a missing or
// unreadable score falls back on its own instead of failing the payload.
type rawSection struct {
	Score json.RawMessage `json:"score"`
	Tips  []model.Tip     `json:"tips"`
}

type rawAnalysis struct {
	CompanyName     string          `json:"companyName"`
	JobTitle        string          `json:"jobTitle"`
	OverallScore    json.RawMessage `json:"overallScore"`
	Summary         string          `json:"summary"`
	HeadPoints      []string        `json:"headPoints"`
	MissingKeywords []string        `json:"missingKeywords"`
	ATS             rawSection      `json:"ATS"`
	Content         rawSection      `json:"content"`
	Structure       rawSection      `json:"structure"`
	Skills          rawSection      `json:"skills"`
	ToneAndStyle    rawSection      `json:"toneAndStyle"`
}

func normalizeResumeAnalysis(payload []byte, req TaskRequest) (any, error) {
	var r rawAnalysis
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("decoding resume analysis: %w", err)
	}
	fb := resumeAnalysisFallback(req).(model.ResumeAnalysis)

	a := model.ResumeAnalysis{
		CompanyName: strings.TrimSpace(r.CompanyName),
		JobTitle:    strings.TrimSpace(r.JobTitle),
		Summary:     strings.TrimSpace(r.Summary),
	}
	if score, ok := parseScore(r.OverallScore); ok {
		a.OverallScore = score
	} else {
		a.OverallScore = fb.OverallScore
	}
	if a.Summary == "" {
		a.Summary = fb.Summary
	}
	a.HeadPoints = nonNil(compact(r.HeadPoints))
	a.MissingKeywords = fixedKeywords(r.MissingKeywords, fb.MissingKeywords)

	a.ATS = normalizeSection(r.ATS, fb.ATS)
	a.Content = normalizeSection(r.Content, fb.Content)
	a.Structure = normalizeSection(r.Structure, fb.Structure)
	a.Skills = normalizeSection(r.Skills, fb.Skills)
	a.ToneAndStyle = normalizeSection(r.ToneAndStyle, fb.ToneAndStyle)

	return a, nil
}

// parseScore reads a clamped score; ok is false when raw is absent, null
// or not a number.
func parseScore(raw json.RawMessage) (model.Score, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var s *model.Score
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return 0, false
	}
	return s.Clamp(), true
}

func normalizeSection(raw rawSection, fb model.Section) model.Section {
	score, ok := parseScore(raw.Score)
	if (!ok || score == 0) && len(raw.Tips) == 0 {
		return fb
	}
	if !ok {
		score = fb.Score
	}

	tips := make([]model.Tip, 0, len(raw.Tips))
	for _, t := range raw.Tips {
		if strings.TrimSpace(t.Tip) == "" {
			continue
		}
		if !strings.EqualFold(t.Type, model.TipGood) {
			t.Type = model.TipImprove
		} else {
			t.Type = model.TipGood
		}
		tips = append(tips, t)
	}
	if len(tips) == 0 {
		tips = fb.Tips
	}
	return model.Section{Score: score, Tips: tips}
}

// fixedKeywords returns exactly MissingKeywordCount entries, padding from
// defaults that are not already present.
func fixedKeywords(got, defaults []string) []string {
	out := make([]string, 0, MissingKeywordCount)
	seen := make(map[string]bool)
	add := func(k string) {
		k = strings.TrimSpace(k)
		if k == "" || seen[strings.ToLower(k)] || len(out) == MissingKeywordCount {
			return
		}
		seen[strings.ToLower(k)] = true
		out = append(out, k)
	}
	for _, k := range got {
		add(k)
	}
	for _, k := range defaults {
		add(k)
	}
	return out
}

func normalizeRoadmap(payload []byte, req TaskRequest) (any, error) {
	var r model.Roadmap
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("decoding roadmap: %w", err)
	}

	steps := make([]model.RoadmapStep, 0, RoadmapSteps)
	for _, s := range r.Roadmap {
		if strings.TrimSpace(s.Step) == "" {
			continue
		}
		s.Resources = nonNil(compact(s.Resources))
		steps = append(steps, s)
		if len(steps) == RoadmapSteps {
			break
		}
	}
	if len(steps) == 0 {
		return nil, errEmptyPayload
	}

	fb := roadmapFallback(req).(model.Roadmap)
	for i := len(steps); i < RoadmapSteps; i++ {
		steps = append(steps, fb.Roadmap[i])
	}
	r.Roadmap = steps
	return r, nil
}

func normalizeSearchParams(payload []byte, _ TaskRequest) (any, error) {
	var p model.SearchParams
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("decoding search params: %w", err)
	}
	p.JobTitle = strings.TrimSpace(p.JobTitle)
	p.Location = strings.TrimSpace(p.Location)
	if p.JobTitle == "" {
		p.JobTitle = DefaultTargetRole
	}
	if p.Location == "" {
		p.Location = DefaultLocation
	}
	return p, nil
}

func normalizeLinkedIn(payload []byte, _ TaskRequest) (any, error) {
	var p model.LinkedInProfile
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("decoding linkedin profile: %w", err)
	}
	p.Headlines = nonNil(compact(p.Headlines))
	p.Skills = nonNil(compact(p.Skills))
	p.About = strings.TrimSpace(p.About)
	if p.About == "" && len(p.Headlines) == 0 {
		return nil, errEmptyPayload
	}
	return p, nil
}

func compact(in []string) []string {
	out := in[:0:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
