package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by Get when the key does not exist.
	ErrNotFound   = errors.New("object not found")
	ErrInvalidKey = errors.New("invalid object key")
)

// Object describes one stored upload.
type Object struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Key  string `json:"key"`
}

// ObjectStore keeps uploaded documents until they are analyzed.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (Object, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

// NewKey builds a collision-free key that keeps the original extension.
func NewKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return "uploads/" + uuid.NewString() + ext
}

// cleanKey rejects keys that would escape the store's root.
func cleanKey(key string) (string, error) {
	k := path.Clean("/" + strings.TrimSpace(key))
	k = strings.TrimPrefix(k, "/")
	if k == "" || k == "." || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w %q", ErrInvalidKey, key)
	}
	return k, nil
}
