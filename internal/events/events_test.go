package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type recorder struct {
	got []AnalysisEvent
	err error
}

func (r *recorder) Publish(_ context.Context, ev AnalysisEvent) error {
	r.got = append(r.got, ev)
	return r.err
}

func (r *recorder) Close() error { return nil }

func TestRoutingKey(t *testing.T) {
	ev := AnalysisEvent{Task: "RESUME_ANALYSIS"}
	if got := ev.RoutingKey(); got != "analysis.resume_analysis" {
		t.Errorf("RoutingKey = %q", got)
	}
}

func TestEmit_StampsTimestamp(t *testing.T) {
	rec := &recorder{}
	Emit(context.Background(), rec, AnalysisEvent{ID: "resume:1", Task: "RESUME_ANALYSIS"})
	if len(rec.got) != 1 || rec.got[0].Timestamp.IsZero() {
		t.Fatalf("got %+v", rec.got)
	}
}

func TestEmit_SwallowsErrors(t *testing.T) {
	rec := &recorder{err: errors.New("broker down")}
	Emit(context.Background(), rec, AnalysisEvent{ID: "x", Task: "ROADMAP"})
	Emit(context.Background(), nil, AnalysisEvent{ID: "x", Task: "ROADMAP"})
	if len(rec.got) != 1 {
		t.Errorf("publish attempts = %d", len(rec.got))
	}
}

func TestAnalysisEvent_JSON(t *testing.T) {
	score := 78
	ev := AnalysisEvent{
		ID:        "resume:abc",
		Task:      "RESUME_ANALYSIS",
		Provider:  "gemini",
		Score:     &score,
		Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"id":"resume:abc","task":"RESUME_ANALYSIS","degraded":false,"provider":"gemini","score":78,"timestamp":"2025-01-02T03:04:05Z"}`
	if string(b) != want {
		t.Errorf("got %s", b)
	}

	var noop Publisher = Noop{}
	if err := noop.Publish(context.Background(), ev); err != nil {
		t.Errorf("Noop.Publish: %v", err)
	}
}
