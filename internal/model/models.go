package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ── Scores ─────────────────────────────────────────────

// Score is a 0-100 integer that tolerates the shapes models actually emit:
// 78, 78.4, "78", "78/100".
type Score int

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*s = scoreFromFloat(f)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("score: unsupported value %s", string(data))
	}
	str = strings.TrimSpace(str)
	if i := strings.Index(str, "/"); i != -1 {
		str = strings.TrimSpace(str[:i])
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}
	if math.IsNaN(f) {
		return fmt.Errorf("score: NaN")
	}
	*s = scoreFromFloat(f)
	return nil
}

// scoreFromFloat bounds f before converting so huge values cannot overflow.
func scoreFromFloat(f float64) Score {
	return Score(math.Round(math.Max(0, math.Min(100, f))))
}

// Clamp bounds the score to [0,100].
func (s Score) Clamp() Score {
	switch {
	case s < 0:
		return 0
	case s > 100:
		return 100
	}
	return s
}

// ── Resume analysis ────────────────────────────────────

const (
	TipGood    = "good"
	TipImprove = "improve"
)

type Tip struct {
	Type string `json:"type"`
	Tip  string `json:"tip"`
}

type Section struct {
	Score Score `json:"score"`
	Tips  []Tip `json:"tips"`
}

// ResumeAnalysis is the ATS-style scorecard for one resume
type ResumeAnalysis struct {
	CompanyName     string   `json:"companyName,omitempty"`
	JobTitle        string   `json:"jobTitle,omitempty"`
	OverallScore    Score    `json:"overallScore"`
	Summary         string   `json:"summary"`
	HeadPoints      []string `json:"headPoints"`
	MissingKeywords []string `json:"missingKeywords"`
	ATS             Section  `json:"ATS"`
	Content         Section  `json:"content"`
	Structure       Section  `json:"structure"`
	Skills          Section  `json:"skills"`
	ToneAndStyle    Section  `json:"toneAndStyle"`
}

// ── Roadmap ────────────────────────────────────────────

type RoadmapStep struct {
	Step        string   `json:"step"`
	Description string   `json:"description"`
	Resources   []string `json:"resources"`
}

type Roadmap struct {
	Roadmap []RoadmapStep `json:"roadmap"`
}

// ── Search params ──────────────────────────────────────

type SearchParams struct {
	JobTitle string `json:"job_title"`
	Location string `json:"location"`
}

// ── LinkedIn ───────────────────────────────────────────

type LinkedInProfile struct {
	Headlines []string `json:"headlines"`
	About     string   `json:"about"`
	Skills    []string `json:"skills"`
}

// ── CodeQuest ──────────────────────────────────────────

const (
	CodeModeGenerate = "generate"
	CodeModeReview   = "review"
)

// CodeReview is free-form markdown, either a generated exercise or a review
type CodeReview struct {
	Mode string `json:"mode"`
	Text string `json:"result"`
}

// ── Jobs ───────────────────────────────────────────────

// LiveJob is a listing shown next to the roadmap
type LiveJob struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Salary   string `json:"salary"`
	Location string `json:"location"`
	URL      string `json:"url"`
}

// ── History ────────────────────────────────────────────

// KeyValue is one entry of the namespaced history store
type KeyValue struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	CreatedAt time.Time       `json:"createdAt"`
}

// HistoryPoint is one point on the score-over-time chart
type HistoryPoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// Key prefixes used by the history store
const (
	KeyPrefixResume = "resume:"
)
