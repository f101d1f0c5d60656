package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSortedByPriority(t *testing.T) {
	descs := []Descriptor{
		{Name: "c", Priority: 3},
		{Name: "a", Priority: 1},
		{Name: "b1", Priority: 2},
		{Name: "b2", Priority: 2},
	}

	sorted := Sorted(descs)
	want := []string{"a", "b1", "b2", "c"}
	for i, d := range sorted {
		if d.Name != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], d.Name)
		}
	}
	if descs[0].Name != "c" {
		t.Error("Sorted must not reorder its input")
	}
}

func TestUnconfiguredProviders(t *testing.T) {
	gemini, err := NewGemini(context.Background(), "", "", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	invokers := map[string]Invoker{
		"gemini": gemini,
		"groq":   NewGroq("", "", ""),
		"claude": NewClaude("", "", ""),
	}
	for name, inv := range invokers {
		_, err := inv.Invoke(context.Background(), "hello", ShapeJSON)
		if !errors.Is(err, ErrNotConfigured) {
			t.Errorf("%s: expected ErrNotConfigured, got %v", name, err)
		}
	}
}

func TestGroqInvokeJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer groq-key" {
			t.Error("Expected Authorization header")
		}

		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.ResponseFormat["type"] != "json_object" {
			t.Errorf("Expected json_object response format, got %v", req.ResponseFormat)
		}
		if len(req.Messages) != 2 || req.Messages[1].Content != "extract please" {
			t.Errorf("Unexpected messages: %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"job_title\":\"Data Analyst\"}"}}]}`))
	}))
	defer server.Close()

	groq := NewGroq("groq-key", server.URL, "")
	out, err := groq.Invoke(context.Background(), "extract please", ShapeJSON)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != `{"job_title":"Data Analyst"}` {
		t.Errorf("Unexpected output: %s", out)
	}
}

func TestGroqInvokeTextOmitsJSONMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.ResponseFormat != nil {
			t.Errorf("Expected no response format for text shape, got %v", req.ResponseFormat)
		}
		if len(req.Messages) != 1 {
			t.Errorf("Expected a single user message, got %d", len(req.Messages))
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"## Rating: 80/100"}}]}`))
	}))
	defer server.Close()

	out, err := NewGroq("k", server.URL, "").Invoke(context.Background(), "review", ShapeText)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != "## Rating: 80/100" {
		t.Errorf("Unexpected output: %s", out)
	}
}

func TestGroqEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := NewGroq("k", server.URL, "").Invoke(context.Background(), "x", ShapeJSON)
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse, got %v", err)
	}
}

func TestClaudeInvoke(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("Expected /v1/messages, got %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "claude-key" {
			t.Error("Expected x-api-key header")
		}

		var req claudeRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.System != claudeJSONSystemPrompt {
			t.Errorf("Expected JSON system prompt, got %q", req.System)
		}

		w.Write([]byte(`{"content":[{"type":"text","text":"{\"about\":\"x\"}"}],"stop_reason":"end_turn"}`))
	}))
	defer server.Close()

	out, err := NewClaude("claude-key", server.URL, "").Invoke(context.Background(), "optimize", ShapeJSON)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != `{"about":"x"}` {
		t.Errorf("Unexpected output: %s", out)
	}
}

func TestClaudeNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	_, err := NewClaude("k", server.URL, "").Invoke(context.Background(), "x", ShapeText)
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("Expected status error, got %v", err)
	}
}

func TestInvokeHonoursContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewGroq("k", server.URL, "").Invoke(ctx, "x", ShapeJSON)
	if err == nil {
		t.Fatal("Expected timeout error")
	}
	if time.Since(start) > time.Second {
		t.Errorf("Invoke did not return promptly after deadline: %v", time.Since(start))
	}
}

func TestGeminiInvoke(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.5-flash:generateContent") {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"roadmap\":[]}"}]}}]}`))
	}))
	defer server.Close()

	gemini, err := NewGemini(context.Background(), "gemini-key", "", server.URL)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	out, err := gemini.Invoke(context.Background(), "roadmap please", ShapeJSON)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != `{"roadmap":[]}` {
		t.Errorf("Unexpected output: %s", out)
	}
}
