package api

import (
	"context"
)

type keyType string

const sessionUserKey keyType = "sessionUser"

// ctxWithSessionUser adds the authenticated operator to the context
func ctxWithSessionUser(ctx context.Context, user *SessionUser) context.Context {
	return context.WithValue(ctx, sessionUserKey, user)
}

// ctxSessionUser retrieves the authenticated operator, or nil
func ctxSessionUser(ctx context.Context) *SessionUser {
	if user, ok := ctx.Value(sessionUserKey).(*SessionUser); ok {
		return user
	}
	return nil
}
