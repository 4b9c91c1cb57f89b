package audit

import "context"

// Actor is the principal recorded on every audit entry. Handlers put the
// authenticated operator here; the scheduler runs as "scheduler"; anything
// else falls back to "system".
type Actor struct {
	Name      string
	IP        string
	UserAgent string
}

type actorKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func ActorFrom(ctx context.Context) Actor {
	if ctx != nil {
		if a, ok := ctx.Value(actorKey{}).(Actor); ok && a.Name != "" {
			return a
		}
	}
	return Actor{Name: "system"}
}
