package contextx

import (
	"context"
	"fmt"
	"strings"
)

// Account is the identifier of the caller a request acts for. It is set by
// authentication middleware and read by handlers that act on behalf of the
// caller (sellers creating auctions, buyers paying for them).
type Account string

type contextKeyAccount struct{}

func (a Account) String() string {
	return string(a)
}

// WithAccount stores the caller account. Surrounding whitespace is dropped.
func WithAccount(ctx context.Context, account Account) context.Context {
	return context.WithValue(ctx, contextKeyAccount{}, Account(strings.TrimSpace(string(account))))
}

// AccountFromContext returns ErrNoValue when the request is anonymous, including
// when an empty account was stored.
func AccountFromContext(ctx context.Context) (Account, error) {
	account, ok := ctx.Value(contextKeyAccount{}).(Account)
	if !ok || account == "" {
		return "", fmt.Errorf("account: %w", ErrNoValue)
	}

	return account, nil
}
