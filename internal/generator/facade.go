// Package generator wraps the opaque on-device model behind an
// availability gate and a graceful fallback, so callers never have to
// special-case "the model isn't ready yet".
package generator

import (
	"context"
	"fmt"

	"github.com/thushan/pigate/internal/core/ports"
	"github.com/thushan/pigate/internal/logger"
)

const fallbackPrefix = "(Local fallback) Apple Intelligence unavailable"

// Facade adapts a ports.Generator with availability checking and a
// friendly fallback string used whenever the backend can't serve a
// request. It never returns an error to callers on the unavailable
// path — the fallback string is the response.
type Facade struct {
	backend ports.Generator
	log     *logger.StyledLogger
}

func New(backend ports.Generator, log *logger.StyledLogger) *Facade {
	return &Facade{backend: backend, log: log}
}

// Available reports whether the backend is ready to serve requests.
func (f *Facade) Available(ctx context.Context) bool {
	return f.backend.Available(ctx)
}

// Generate produces a completion, falling back to a friendly string if
// the backend is unavailable or errors mid-call.
func (f *Facade) Generate(ctx context.Context, instructions, prompt string) (string, error) {
	if !f.backend.Available(ctx) {
		return fallbackString(""), nil
	}

	text, err := f.backend.Generate(ctx, instructions, prompt)
	if err != nil {
		f.log.Warn("generator call failed", "error", err)
		return fallbackString(err.Error()), nil
	}
	return text, nil
}

func fallbackString(reason string) string {
	if reason == "" {
		return fallbackPrefix + ": model not ready."
	}
	return fmt.Sprintf("%s: %s", fallbackPrefix, reason)
}
