package settings

import (
	"context"
)

type runContextKey struct{}

// IntoContext attaches the run parameters to the context so code below
// the CLI surface can read them without plumbing Run explicitly.
func IntoContext(ctx context.Context, s *Run) context.Context {
	return context.WithValue(ctx, runContextKey{}, s)
}

// FromContext retrieves the run parameters stored by IntoContext.
func FromContext(ctx context.Context) (*Run, bool) {
	s, ok := ctx.Value(runContextKey{}).(*Run)
	return s, ok
}
