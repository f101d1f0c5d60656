package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestLocalStore_PutGet(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads/")
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	key := NewKey("My Resume.PDF")
	if !strings.HasPrefix(key, "uploads/") || !strings.HasSuffix(key, ".pdf") {
		t.Fatalf("unexpected key %q", key)
	}

	obj, err := store.Put(context.Background(), key, strings.NewReader("%PDF-1.4 body"), 13, "application/pdf")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if obj.Key != key || obj.URL != "/uploads/"+key {
		t.Errorf("got %+v", obj)
	}

	data, err := store.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "%PDF-1.4 body" {
		t.Errorf("Get = %q", data)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestLocalStore_PutFailureLeavesNoObject(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	if _, err := store.Put(context.Background(), "uploads/partial.pdf", failingReader{}, 0, ""); err == nil {
		t.Fatal("expected Put to fail on a broken body")
	}
	if _, err := store.Get(context.Background(), "uploads/partial.pdf"); !errors.Is(err, ErrNotFound) {
		t.Errorf("partial upload left behind, Get returned %v", err)
	}
}

func TestLocalStore_NotFound(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}
	if _, err := store.Get(context.Background(), "uploads/missing.pdf"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}
	for _, key := range []string{"../etc/passwd", "uploads/../../x", "", "  "} {
		if _, err := store.Get(context.Background(), key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("key %q: expected invalid key error, got %v", key, err)
		}
	}
}

func TestRetry(t *testing.T) {
	calls := 0
	got, err := retry(context.Background(), 3, func() (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	if err != nil || got != "ok" || calls != 2 {
		t.Fatalf("got %q, %v after %d calls", got, err, calls)
	}

	calls = 0
	_, err = retry(context.Background(), 3, func() (string, error) {
		calls++
		return "", ErrNotFound
	})
	if !errors.Is(err, ErrNotFound) || calls != 1 {
		t.Errorf("not-found should not be retried: %v after %d calls", err, calls)
	}
}

func TestR2Config_Enabled(t *testing.T) {
	if (R2Config{AccountID: "a", Bucket: "b", AccessKey: "c"}).Enabled() {
		t.Error("config without secret should be disabled")
	}
	if !(R2Config{AccountID: "a", Bucket: "b", AccessKey: "c", SecretKey: "d"}).Enabled() {
		t.Error("complete config should be enabled")
	}
}
