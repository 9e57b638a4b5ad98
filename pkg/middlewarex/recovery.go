package middlewarex

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"dutch_market/pkg/httpx/reply"
	"dutch_market/pkg/logx"
)

// Recovery отвечает 500 с телом ошибки вместо обрыва соединения.
// http.ErrAbortHandler пробрасывается дальше, его обрабатывает net/http.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			logger(ctx).Error(
				"panic in handler",
				slog.Any(logx.FieldError, rec),
				slog.String(logx.FieldStack, string(debug.Stack())),
			)

			reply.InternalError(ctx, w)
		}()

		next.ServeHTTP(w, r)
	})
}
