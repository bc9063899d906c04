package context

import (
	"context"

	"github.com/muhammadheryan/community-market/constant"
	"github.com/muhammadheryan/community-market/model"
)

func GetUserID(ctx context.Context) (uint64, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

// GetPrincipal returns the authenticated caller stored by the auth middleware
func GetPrincipal(ctx context.Context) (model.Principal, bool) {
	id, ok := GetUserID(ctx)
	if !ok || id == 0 {
		return model.Principal{}, false
	}
	isAdmin, _ := ctx.Value(constant.IsAdminKey).(bool)
	return model.Principal{UserID: id, IsAdmin: isAdmin}, true
}

// WithPrincipal stores the caller in ctx
func WithPrincipal(ctx context.Context, p model.Principal) context.Context {
	ctx = context.WithValue(ctx, constant.UserIDKey, p.UserID)
	return context.WithValue(ctx, constant.IsAdminKey, p.IsAdmin)
}
