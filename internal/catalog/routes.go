package catalog

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/products", h.ListProducts)
	r.Get("/products/available", h.ListAvailable)
	r.Post("/combos", h.CreateCombo)
}
