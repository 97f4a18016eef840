package backend

import "context"

type csrfTokenKey struct{}

// WithCSRFToken attaches the page token forwarded on mutating calls.
func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfTokenKey{}, token)
}

// CSRFTokenFromContext returns the forwarded page token, if any.
func CSRFTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(csrfTokenKey{}).(string)
	return token
}
