package botcheck

import (
	"context"
	"strings"
)

// Verifier decides whether a bot-check token proves a human visitor.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(ctx context.Context, token, remoteIP string) error

func (f VerifierFunc) Verify(ctx context.Context, token, remoteIP string) error {
	return f(ctx, token, remoteIP)
}

// Present reports whether a token was supplied at all. The submit button of a
// widget stays disabled until it is.
func Present(token string) bool {
	return strings.TrimSpace(token) != ""
}

// Presence only requires a non-empty token. It is used when no secret is
// configured, e.g. in development.
func Presence() Verifier {
	return VerifierFunc(func(_ context.Context, token, _ string) error {
		if !Present(token) {
			return ErrMissingToken
		}
		return nil
	})
}
