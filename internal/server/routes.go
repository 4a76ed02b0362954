package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lotdesk/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) { //nolint:funlen
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/session", func(r chi.Router) {
				r.Get("/", handler(s.getV1Session))
				r.Post("/", handler(s.postV1Session))
				r.Delete("/", handler(s.deleteV1Session))
				r.Put("/interval", handler(s.putV1SessionInterval))
			})

			r.Route("/lots", func(r chi.Router) {
				r.Get("/", handler(s.getV1Lots))
				r.Post("/{id}/accept", handler(s.postV1LotAccept))
				r.Post("/{id}/reject", handler(s.postV1LotReject))
			})

			r.Route("/filters", func(r chi.Router) {
				r.Put("/", handler(s.putV1Filters))
				r.Delete("/", handler(s.deleteV1Filters))
			})

			r.Post("/suppliers/notify", handler(s.postV1SuppliersNotify))
			r.Get("/toasts", handler(s.getV1Toasts))
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
