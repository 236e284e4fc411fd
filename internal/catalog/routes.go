package catalog

import (
	"github.com/go-chi/chi/v5"

	"github.com/ranchhand-app/ranchhand/internal/rbac"
)

func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny("catalog.view"))
		r.Get("/catalog", h.List)
		r.Get("/catalog/{id}", h.Show)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAll("catalog.edit"))
		r.Post("/catalog", h.Create)
		r.Post("/catalog/import-defaults", h.ImportDefaults)
		r.Patch("/catalog/{id}", h.Update)
		r.Delete("/catalog/{id}", h.Delete)
	})
}
