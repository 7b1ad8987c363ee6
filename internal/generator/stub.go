package generator

import "context"

// UnavailableBackend is a placeholder ports.Generator for environments
// with no on-device model wired in yet. It always reports unavailable,
// so the Facade's fallback path is exercised end-to-end without a real
// backend attached — the real on-device integration is an external
// collaborator per the gateway's scope.
type UnavailableBackend struct{}

func (UnavailableBackend) Generate(ctx context.Context, instructions, prompt string) (string, error) {
	return "", nil
}

func (UnavailableBackend) Available(ctx context.Context) bool {
	return false
}
