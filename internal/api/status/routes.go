package status

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers status routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
}
