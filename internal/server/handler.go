package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dutch_market/pkg/logx"
	"dutch_market/pkg/middlewarex"
)

type HandlerOptions struct {
	LogFieldMaxLen int
	// LogBodies включает запись тел запросов и ответов в журнал.
	LogBodies bool
}

// NewHandler собирает роутер с общими middleware.
func NewHandler(s Server, opts HandlerOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
	)

	if opts.LogBodies {
		masker := logx.NewSensitiveDataMasker()

		r.Use(
			middlewarex.RequestLogging(masker, opts.LogFieldMaxLen),
			middlewarex.ResponseLogging(masker, opts.LogFieldMaxLen),
		)
	}

	s.RegisterRoutes(r)

	return r
}
