package auth

import (
	"context"
	"errors"

	"github.com/ghuser/auctionsite/services/auction/domain/models"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const userKey contextKey = "user"

// ErrUserNotFound is returned when no User exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrUserNotFound = errors.New("user not found in context")

// UserFromCtx extracts the authenticated caller identity from the request context.
// Returns ErrUserNotFound if none is set (unauthenticated request).
func UserFromCtx(ctx context.Context) (models.User, error) {
	user, ok := ctx.Value(userKey).(models.User)
	if !ok || user.ID == "" {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// WithUser returns a new context with the given identity attached.
// Used by the authentication middleware after decoding the gateway header.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
