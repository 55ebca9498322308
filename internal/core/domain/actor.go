package domain

import "context"

type actorCtxKey struct{}

// WithActor records the ID of the user performing the current operation.
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, userID)
}

// ActorFromContext returns the acting user ID, or "" when the call is anonymous.
func ActorFromContext(ctx context.Context) string {
	id, _ := ctx.Value(actorCtxKey{}).(string)
	return id
}
