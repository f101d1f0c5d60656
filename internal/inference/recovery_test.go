package inference

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRecover(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want map[string]any
		ok   bool
	}{
		{"plain", `{"a":1}`, map[string]any{"a": 1.0}, true},
		{"json fence", "```json\n{\"job_title\":\"Data Analyst\",\"location\":\"India\"}\n```",
			map[string]any{"job_title": "Data Analyst", "location": "India"}, true},
		{"bare fence", "```\n{\"a\":\"b\"}\n```", map[string]any{"a": "b"}, true},
		{"prose around", "Sure! Here you go: {\"a\": [1, 2]} Hope that helps.", map[string]any{"a": []any{1.0, 2.0}}, true},
		{"nested", `{"a":{"b":{"c":true}}}`, map[string]any{"a": map[string]any{"b": map[string]any{"c": true}}}, true},
		{"empty", "", nil, false},
		{"whitespace", "   \n", nil, false},
		{"no object", "I cannot help with that.", nil, false},
		{"truncated", `{"a": 1, "b": `, nil, false},
		{"null", "null", nil, false},
		{"array", `[1,2,3]`, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Recover(tc.raw)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestRecover_RoundTrip(t *testing.T) {
	v := map[string]any{
		"overallScore": 72.0,
		"tags":         []any{"go", "sql"},
		"nested":       map[string]any{"ok": true},
	}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	got, ok := Recover(string(b))
	if !ok {
		t.Fatal("expected recovery to succeed")
	}
	if !reflect.DeepEqual(got, v) {
		t.Errorf("got %#v, want %#v", got, v)
	}
}

func TestRecoverBytes(t *testing.T) {
	b, ok := RecoverBytes("```json\n{\"x\": \"y\"}\n```")
	if !ok {
		t.Fatal("expected recovery to succeed")
	}
	if string(b) != `{"x":"y"}` {
		t.Errorf("got %s", b)
	}
	if _, ok := RecoverBytes("nope"); ok {
		t.Error("expected failure for non-json")
	}
}

func TestRecover_KeepsFencesInsideValues(t *testing.T) {
	v := map[string]any{
		"about":  "Wrap snippets in ```python blocks",
		"skills": []any{"```go", "SQL ```"},
	}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, raw := range []string{
		string(b),
		"```json\n" + string(b) + "\n```",
		"Here it is:\n```\n" + string(b) + "\n```\nDone.",
	} {
		got, ok := Recover(raw)
		if !ok {
			t.Fatalf("Recover(%q) failed", raw)
		}
		if !reflect.DeepEqual(got, v) {
			t.Errorf("Recover(%q) = %#v, want %#v", raw, got, v)
		}
	}
}

func TestRecover_StripsFenceLinesWhenNeeded(t *testing.T) {
	raw := "{\n```json\n\"a\": \"b\"\n```\n}"
	got, ok := Recover(raw)
	if !ok {
		t.Fatal("expected recovery after stripping fence lines")
	}
	if !reflect.DeepEqual(got, map[string]any{"a": "b"}) {
		t.Errorf("got %#v", got)
	}
}
