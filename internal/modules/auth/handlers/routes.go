package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers public auth routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.HandleRegister)
		r.Post("/login", h.HandleLogin)
	})
}

// RegisterProtectedRoutes registers routes that require a verified session
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/auth/me", h.HandleMe)
}
