package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all analytics routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/analytics", h.HandleGetAnalytics)

	r.Route("/portfolio", func(r chi.Router) {
		r.Get("/summary", h.HandleGetSummary)
		r.Get("/holdings", h.HandleGetHoldings)
	})
}
