package vesting

import "context"

type actorKey struct{}

// WithActor returns a context carrying the calling identity. Issue and
// Revoke compare this identity against the ledger owner; Release ignores it.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom extracts the calling identity from the context, or "" if none
// was set.
func ActorFrom(ctx context.Context) string {
	if v := ctx.Value(actorKey{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
