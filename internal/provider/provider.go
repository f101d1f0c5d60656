package provider

import (
	"context"
	"errors"
	"sort"
	"time"
)

var (
	// ErrNotConfigured is returned by a provider whose credentials are absent.
	// The cascade skips such providers without counting an attempt.
	ErrNotConfigured = errors.New("provider not configured")
	// ErrEmptyResponse is returned when a provider answers with no text.
	ErrEmptyResponse = errors.New("empty response from provider")
)

// Shape tells a provider what kind of answer the caller expects.
type Shape int

const (
	ShapeText Shape = iota
	ShapeJSON
)

func (s Shape) String() string {
	if s == ShapeJSON {
		return "json"
	}
	return "text"
}

// Invoker sends a prompt to an inference backend and returns the raw text.
type Invoker interface {
	Invoke(ctx context.Context, prompt string, shape Shape) (string, error)
}

// InvokerFunc adapts a plain function to Invoker.
type InvokerFunc func(ctx context.Context, prompt string, shape Shape) (string, error)

func (f InvokerFunc) Invoke(ctx context.Context, prompt string, shape Shape) (string, error) {
	return f(ctx, prompt, shape)
}

// Descriptor is one entry of the deployment's provider table.
// Lower Priority is tried first.
type Descriptor struct {
	Name     string
	Priority int
	Timeout  time.Duration
	Invoker  Invoker
}

// DefaultTimeout bounds a single provider call when a descriptor has none.
const DefaultTimeout = 30 * time.Second

// Sorted returns a copy of descs ordered by ascending priority.
// Equal priorities keep their input order.
func Sorted(descs []Descriptor) []Descriptor {
	out := make([]Descriptor, len(descs))
	copy(out, descs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}
