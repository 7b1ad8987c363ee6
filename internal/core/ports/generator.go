package ports

import "context"

// Generator is the opaque on-device text-generation backend. The gateway
// never inspects how it produces text - it only ever calls Generate and
// consults Available before doing so.
type Generator interface {
	// Generate runs one bounded inference round. instructions is a system-role
	// steering string (may be empty); prompt is the fully-composed user-facing
	// prompt. Implementations may block for the duration of inference.
	Generate(ctx context.Context, instructions, prompt string) (string, error)

	// Available reports whether the backend is ready to serve a request right
	// now. The gateway calls this before every generation attempt so it can
	// substitute a graceful fallback string instead of failing the request.
	Available(ctx context.Context) bool
}
