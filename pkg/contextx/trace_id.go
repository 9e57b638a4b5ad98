package contextx

import (
	"context"
	"fmt"

	"github.com/rs/xid"
)

// TraceID correlates log lines of one request and is returned to clients as
// the support id of an error.
type TraceID string

type contextKeyTraceID struct{}

const maxTraceIDLen = 64

func (t TraceID) String() string {
	return string(t)
}

// NewTraceID returns a fresh sortable id.
func NewTraceID() TraceID {
	return TraceID(xid.New().String())
}

// ParseTraceID accepts ids from upstream proxies: up to 64 characters of
// letters, digits, '-' and '_'. Anything else would end up verbatim in logs.
func ParseTraceID(s string) (TraceID, bool) {
	if s == "" || len(s) > maxTraceIDLen {
		return "", false
	}

	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return "", false
		}
	}

	return TraceID(s), true
}

func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, contextKeyTraceID{}, traceID)
}

func TraceIDFromContext(ctx context.Context) (TraceID, error) {
	traceID, ok := ctx.Value(contextKeyTraceID{}).(TraceID)
	if !ok {
		return "", fmt.Errorf("trace id: %w", ErrNoValue)
	}

	return traceID, nil
}
