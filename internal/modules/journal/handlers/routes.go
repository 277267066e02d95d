package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all journal routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/journal", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Delete("/{id}", h.HandleDelete)
	})
}
