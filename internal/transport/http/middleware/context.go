package middleware

import (
	"context"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/platform/requestctx"
)

type ctxKey int

const ctxKeyUser ctxKey = iota

func GetUser(ctx context.Context) (auth.UserContext, bool) {
	user, ok := ctx.Value(ctxKeyUser).(auth.UserContext)
	return user, ok
}

func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}
