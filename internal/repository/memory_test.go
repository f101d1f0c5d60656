package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestMemoryHistory_SetGet(t *testing.T) {
	m := NewMemoryHistory()
	ctx := context.Background()

	if kv, err := m.Get(ctx, "resume:missing"); err != nil || kv != nil {
		t.Fatalf("Get missing = %v, %v", kv, err)
	}

	if _, err := m.Set(ctx, "resume:1", json.RawMessage(`{"overallScore":70}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	kv, err := m.Get(ctx, "resume:1")
	if err != nil || kv == nil {
		t.Fatalf("Get failed: %v, %v", kv, err)
	}
	if string(kv.Value) != `{"overallScore":70}` {
		t.Errorf("Value = %s", kv.Value)
	}
}

func TestMemoryHistory_ListByPrefixNewestFirst(t *testing.T) {
	m := NewMemoryHistory()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	m.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Hour)
	}
	ctx := context.Background()

	for _, k := range []string{"resume:a", "note:x", "resume:b", "resume:c"} {
		if _, err := m.Set(ctx, k, json.RawMessage(`{}`)); err != nil {
			t.Fatalf("Set(%s) failed: %v", k, err)
		}
	}

	got, err := m.List(ctx, "resume:", 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 || got[0].Key != "resume:c" || got[1].Key != "resume:b" {
		t.Errorf("List = %+v", got)
	}

	all, _ := m.List(ctx, "", 0)
	if len(all) != 4 {
		t.Errorf("List all = %d entries", len(all))
	}
}

func TestMemoryHistory_OverwriteRefreshesCreatedAt(t *testing.T) {
	m := NewMemoryHistory()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	m.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	ctx := context.Background()

	first, _ := m.Set(ctx, "k", json.RawMessage(`1`))
	second, _ := m.Set(ctx, "k", json.RawMessage(`2`))
	if !second.CreatedAt.After(first.CreatedAt) {
		t.Errorf("CreatedAt not refreshed on overwrite")
	}
	kv, _ := m.Get(ctx, "k")
	if string(kv.Value) != "2" {
		t.Errorf("Value = %s", kv.Value)
	}
}
