package auth

import (
	"DentEase/impl/core"
	"context"
)

type Core interface {
	Login(ctx context.Context, email, password string) (*core.LoginResult, error)
	ChangePassword(ctx context.Context, email, current, next string) error
}
