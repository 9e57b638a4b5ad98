package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dutch_market/pkg/httpx/reply"
	"dutch_market/pkg/middlewarex"
)

func (s Server) RegisterRoutes(r chi.Router) { //nolint:funlen
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			// unauthorized zone
			r.Route("/auctions", func(r chi.Router) {
				r.Get("/", handler(s.getV1Auctions))
				r.Get("/{index}", handler(s.getV1Auction))
				r.Get("/{index}/price", handler(s.getV1AuctionPrice))

				// authorized zone
				r.Group(func(r chi.Router) {
					r.Use(middlewarex.BearerIdentity)

					r.Post("/", handler(s.postV1Auction))
					r.Post("/{index}/buy", handler(s.postV1AuctionBuy))
				})
			})

			r.Get("/accounts/{account}/balance", handler(s.getV1AccountBalance))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
