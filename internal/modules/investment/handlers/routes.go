package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all investment routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/investments", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Get("/types", h.HandleListTypes)

		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", h.HandleDelete)
			r.Get("/transactions", h.HandleListTransactions)
			r.Post("/transactions", h.HandleCreateTransaction)
		})
	})
}
