package api

import (
	"context"

	"trekbooking/internal/adminuser"
	"trekbooking/internal/user"
)

type ctxKey string

const (
	ctxKeyUser  ctxKey = "user"
	ctxKeyAdmin ctxKey = "admin"
)

func WithUser(ctx context.Context, p *user.Profile) context.Context {
	return context.WithValue(ctx, ctxKeyUser, p)
}

func UserFromContext(ctx context.Context) *user.Profile {
	v := ctx.Value(ctxKeyUser)
	if v == nil {
		return nil
	}
	p, _ := v.(*user.Profile)
	return p
}

func WithAdmin(ctx context.Context, a *adminuser.Admin) context.Context {
	return context.WithValue(ctx, ctxKeyAdmin, a)
}

func AdminFromContext(ctx context.Context) *adminuser.Admin {
	v := ctx.Value(ctxKeyAdmin)
	if v == nil {
		return nil
	}
	a, _ := v.(*adminuser.Admin)
	return a
}
