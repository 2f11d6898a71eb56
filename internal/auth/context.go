package auth

import (
	"context"

	"github.com/rupaladventures/basecamp/internal/domain"
)

type ctxKey int

const ctxUser ctxKey = iota

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, ctxUser, user)
}

// UserFrom returns the signed-in user, if any.
func UserFrom(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxUser).(domain.User)
	return u, ok
}
