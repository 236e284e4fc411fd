package orders

import (
	"github.com/go-chi/chi/v5"

	"github.com/ranchhand-app/ranchhand/internal/rbac"
)

func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny("orders.view"))
		r.Get("/orders", h.List)
		r.Get("/orders/stats", h.Stats)
		r.Get("/orders/{id}", h.Show)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAll("orders.edit"))
		r.Post("/orders", h.Create)
		r.Patch("/orders/{id}", h.Update)
		r.Post("/orders/{id}/checklist/{index}/toggle", h.ToggleChecklistItem)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAll("orders.delete"))
		r.Delete("/orders/{id}", h.Delete)
	})
}
