// Package actorcontext propagates the authenticated actor identity through
// request contexts. The HTTP layer sets it; services read it for audit
// attribution. Authentication itself happens outside this system.
package actorcontext

import (
	"context"
	"strings"
)

type contextKey struct{}

// WithActor returns a context carrying the actor id.
func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, contextKey{}, strings.TrimSpace(actorID))
}

// ActorFromContext returns the actor id, if present.
func ActorFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	actorID, ok := ctx.Value(contextKey{}).(string)
	if !ok || actorID == "" {
		return "", false
	}
	return actorID, true
}
