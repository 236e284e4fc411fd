package gamemap

import (
	"github.com/go-chi/chi/v5"

	"github.com/ranchhand-app/ranchhand/internal/rbac"
)

func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny("map.view"))
		r.Get("/map/pins", h.List)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAll("map.place"))
		r.Post("/map/pins", h.Place)
		r.Delete("/map/pins/{id}", h.Delete)
	})
}
