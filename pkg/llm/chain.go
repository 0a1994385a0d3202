package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

var ErrExhausted = errors.New("no usable response from any variant")

type Step struct {
	Target Target
	Prompt Prompt
}

// Outcome records which variant produced the text and how many attempts it took.
type Outcome struct {
	Text     string
	Variant  string
	Attempts int
}

// Chain tries a fixed list of steps in order, each with its own timeout.
// There is no backoff: a failed step moves on to the next one.
type Chain struct {
	provider Provider
	timeout  time.Duration
}

func NewChain(provider Provider, timeout time.Duration) *Chain {
	return &Chain{provider: provider, timeout: timeout}
}

// Run returns the first response accepted by accept. When every step fails the
// returned error wraps ErrExhausted and the last failure.
func (c *Chain) Run(ctx context.Context, apiKey string, steps []Step, accept func(string) bool) (Outcome, error) {
	var lastErr error

	for i, step := range steps {
		attempt := i + 1
		slog.Debug("trying generative variant",
			"provider", c.provider.Name(), "variant", step.Target.Name,
			"attempt", attempt, "of", len(steps))

		text, err := c.attempt(ctx, apiKey, step)
		if err != nil {
			slog.Warn("generative variant failed",
				"provider", c.provider.Name(), "variant", step.Target.Name,
				"attempt", attempt, "error", err)
			lastErr = err
			continue
		}

		if !accept(text) {
			slog.Warn("generative variant returned unusable text",
				"provider", c.provider.Name(), "variant", step.Target.Name, "attempt", attempt)
			lastErr = fmt.Errorf("%s returned no usable content", step.Target.Name)
			continue
		}

		slog.Info("generative variant succeeded",
			"provider", c.provider.Name(), "variant", step.Target.Name, "attempts", attempt)
		return Outcome{Text: text, Variant: step.Target.Name, Attempts: attempt}, nil
	}

	if lastErr == nil {
		return Outcome{Attempts: len(steps)}, ErrExhausted
	}
	return Outcome{Attempts: len(steps)}, fmt.Errorf("%w after %d attempts: %v", ErrExhausted, len(steps), lastErr)
}

func (c *Chain) attempt(ctx context.Context, apiKey string, step Step) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.provider.Generate(ctx, apiKey, step.Target, step.Prompt)
}

func nonEmpty(text string) bool {
	return strings.TrimSpace(text) != ""
}
