package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeiq-api/internal/provider"
)

// Attempt statuses recorded per provider call.
const (
	AttemptOK       = "ok"
	AttemptSkipped  = "skipped"
	AttemptFailed   = "failed"
	AttemptEmpty    = "empty"
	AttemptTimeout  = "timeout"
	AttemptRejected = "rejected"
)

// Attempt records one provider call made by the cascade.
type Attempt struct {
	Provider string
	Status   string
	Elapsed  time.Duration
	Err      error
}

// Output is the winning answer of a cascade run.
type Output struct {
	Raw      string
	Provider string
	Attempts []Attempt
}

// Cascade tries providers one at a time in priority order until one
// answers. It holds no mutable state and may be shared across goroutines.
type Cascade struct {
	providers []provider.Descriptor
}

// NewCascade orders descs by ascending priority.
func NewCascade(descs []provider.Descriptor) *Cascade {
	return &Cascade{providers: provider.Sorted(descs)}
}

// Names returns the provider names in the order they are tried.
func (c *Cascade) Names() []string {
	names := make([]string, len(c.providers))
	for i, d := range c.providers {
		names[i] = d.Name
	}
	return names
}

type execOptions struct {
	order  []string
	accept func(raw string) bool
	task   TaskKind
}

// ExecOption tunes a single Execute call.
type ExecOption func(*execOptions)

// WithOrder moves the named providers to the front, in the given order.
// Unknown names are ignored.
func WithOrder(names ...string) ExecOption {
	return func(o *execOptions) { o.order = names }
}

// WithAccept makes the cascade advance when accept rejects an answer.
func WithAccept(accept func(raw string) bool) ExecOption {
	return func(o *execOptions) { o.accept = accept }
}

// WithTask tags attempt logs with the task kind.
func WithTask(kind TaskKind) ExecOption {
	return func(o *execOptions) { o.task = kind }
}

func (c *Cascade) ordered(names []string) []provider.Descriptor {
	if len(names) == 0 {
		return c.providers
	}
	out := make([]provider.Descriptor, 0, len(c.providers))
	used := make(map[int]bool, len(names))
	for _, name := range names {
		for i, d := range c.providers {
			if !used[i] && strings.EqualFold(d.Name, name) {
				out = append(out, d)
				used[i] = true
				break
			}
		}
	}
	for i, d := range c.providers {
		if !used[i] {
			out = append(out, d)
		}
	}
	return out
}

// Execute sends prompt to each provider in turn. The first non-empty answer
// that passes the accept check wins. Unconfigured providers are skipped.
// A cancelled ctx stops the cascade; exhaustion wraps ErrProviderExhausted.
func (c *Cascade) Execute(ctx context.Context, prompt string, shape provider.Shape, opts ...ExecOption) (Output, error) {
	var o execOptions
	for _, opt := range opts {
		opt(&o)
	}

	var out Output
	for _, d := range c.ordered(o.order) {
		if err := ctx.Err(); err != nil {
			return out, fmt.Errorf("%w: %v", ErrProviderExhausted, err)
		}

		att, raw := c.attempt(ctx, d, prompt, shape)
		if att.Status == AttemptOK && o.accept != nil && !o.accept(raw) {
			att.Status = AttemptRejected
		}
		logAttempt(o.task, att)

		if att.Status == AttemptSkipped {
			continue
		}
		out.Attempts = append(out.Attempts, att)
		if att.Status == AttemptOK {
			out.Raw = raw
			out.Provider = d.Name
			return out, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return out, fmt.Errorf("%w: %v", ErrProviderExhausted, err)
	}
	return out, fmt.Errorf("%w after %d attempts", ErrProviderExhausted, len(out.Attempts))
}

type invokeResult struct {
	raw string
	err error
}

func (c *Cascade) attempt(ctx context.Context, d provider.Descriptor, prompt string, shape provider.Shape) (Attempt, string) {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = provider.DefaultTimeout
	}
	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	done := make(chan invokeResult, 1)
	go func() {
		raw, err := d.Invoker.Invoke(actx, prompt, shape)
		done <- invokeResult{raw: raw, err: err}
	}()

	att := Attempt{Provider: d.Name}
	var res invokeResult
	select {
	case res = <-done:
	case <-actx.Done():
		res = invokeResult{err: actx.Err()}
	}
	att.Elapsed = time.Since(start)

	switch {
	case errors.Is(res.err, provider.ErrNotConfigured):
		att.Status = AttemptSkipped
	case errors.Is(res.err, provider.ErrEmptyResponse):
		att.Status = AttemptEmpty
		att.Err = res.err
	case errors.Is(res.err, context.DeadlineExceeded) && ctx.Err() == nil:
		att.Status = AttemptTimeout
		att.Err = res.err
	case res.err != nil:
		att.Status = AttemptFailed
		att.Err = res.err
	case strings.TrimSpace(res.raw) == "":
		att.Status = AttemptEmpty
		att.Err = provider.ErrEmptyResponse
	default:
		att.Status = AttemptOK
	}
	return att, res.raw
}

func logAttempt(task TaskKind, att Attempt) {
	ev := log.Debug()
	switch att.Status {
	case AttemptFailed, AttemptTimeout, AttemptEmpty, AttemptRejected:
		ev = log.Warn()
	}
	ev.Str("provider", att.Provider).
		Str("task", string(task)).
		Str("status", att.Status).
		Dur("elapsed", att.Elapsed).
		Err(att.Err).
		Msg("provider attempt")
}
