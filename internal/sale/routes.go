package sale

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Post("/{id}/items", h.SaveItems)
	r.Get("/{id}/totals", h.Totals)
	r.Put("/{id}/customer", h.AssignCustomer)
	r.Delete("/{id}/customer", h.UnassignCustomer)
	r.Post("/{id}/discount", h.ApplyDiscount)
}
