package http

import (
	"context"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/domain"
)

type ctxKey struct{}

func withAccount(ctx context.Context, acct domain.Account) context.Context {
	return context.WithValue(ctx, ctxKey{}, acct)
}

// accountFrom returns the account attached by the session middleware.
func accountFrom(ctx context.Context) (domain.Account, bool) {
	acct, ok := ctx.Value(ctxKey{}).(domain.Account)
	return acct, ok
}
