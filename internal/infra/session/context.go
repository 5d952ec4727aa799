package session

import "context"

type ctxKey struct{}

// With attaches the session to the request context so every collaborator
// call downstream can authenticate without touching shared state.
func With(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// From returns the session bound to ctx, or nil for anonymous requests.
func From(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
