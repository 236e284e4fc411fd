package quotes

import (
	"github.com/go-chi/chi/v5"

	"github.com/ranchhand-app/ranchhand/internal/rbac"
)

func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny("quotes.view"))
		r.Get("/quotes", h.List)
		r.Get("/quotes/{id}", h.Show)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAll("quotes.edit"))
		r.Post("/quotes", h.Create)
		r.Patch("/quotes/{id}", h.Update)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAll("quotes.convert"))
		r.Post("/quotes/{id}/convert", h.Convert)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAll("quotes.delete"))
		r.Delete("/quotes/{id}", h.Delete)
	})
}
