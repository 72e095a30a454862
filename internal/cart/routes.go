package cart

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.CreateSession)
	r.Get("/{id}", h.ShowSession)
	r.Delete("/{id}", h.DiscardSession)
	r.Post("/{id}/items", h.AddItem)
	r.Put("/{id}/items/{tempID}", h.UpdateQuantity)
	r.Delete("/{id}/items/{tempID}", h.RemoveItem)
}
