package fund

import (
	"github.com/go-chi/chi/v5"

	"github.com/ranchhand-app/ranchhand/internal/rbac"
)

func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny("fund.view"))
		r.Get("/fund", h.Summary)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAll("fund.manage"))
		r.Post("/fund/deposit", h.Deposit)
		r.Post("/fund/withdraw", h.Withdraw)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAll("fund.adjust"))
		r.Post("/fund/adjust", h.Adjust)
	})
}
