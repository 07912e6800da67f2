package cont

import (
	"DentEase/entity"
	"context"
)

type ctxKey string

const userKey ctxKey = "admin"

func PutUser(ctx context.Context, user *entity.AdminAuth) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func GetUser(ctx context.Context) *entity.AdminAuth {
	user, ok := ctx.Value(userKey).(*entity.AdminAuth)
	if !ok {
		return nil
	}
	return user
}

// Username returns the signed-in operator's email, or "admin" outside a request.
func Username(ctx context.Context) string {
	if user := GetUser(ctx); user != nil {
		return user.Email
	}
	return entity.AdminAccountID
}
