package shared

import "context"

type ctxKey int

const sessionKey ctxKey = iota

// WithSession attaches the request session.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFrom returns the request session, or nil outside the session middleware.
func SessionFrom(ctx context.Context) *Session {
	if ctx == nil {
		return nil
	}
	sess, _ := ctx.Value(sessionKey).(*Session)
	return sess
}
