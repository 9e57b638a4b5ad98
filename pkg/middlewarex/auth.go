package middlewarex

import (
	"log/slog"
	"net/http"
	"strings"

	"dutch_market/pkg/contextx"
	"dutch_market/pkg/httpx/reply"
	"dutch_market/pkg/logx"
)

const bearerPrefix = "Bearer "

// BearerIdentity кладёт в контекст идентификатор вызывающего из заголовка
// Authorization. Запросы без него отклоняются с 401.
func BearerIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		header := r.Header.Get("Authorization")

		token, ok := strings.CutPrefix(header, bearerPrefix)
		token = strings.TrimSpace(token)

		if !ok || token == "" {
			reply.Unauthorized(ctx, w, "missing bearer token")
			return
		}

		ctx = contextx.WithAccount(ctx, contextx.Account(token))
		ctx = contextx.WithLogger(ctx, logger(ctx).With(slog.String(logx.FieldAccount, token)))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
