package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ranchhand-app/ranchhand/internal/activity"
	"github.com/ranchhand-app/ranchhand/internal/auth"
	"github.com/ranchhand-app/ranchhand/internal/catalog"
	"github.com/ranchhand-app/ranchhand/internal/fund"
	"github.com/ranchhand-app/ranchhand/internal/gamemap"
	"github.com/ranchhand-app/ranchhand/internal/orders"
	"github.com/ranchhand-app/ranchhand/internal/posters"
	"github.com/ranchhand-app/ranchhand/internal/quotes"
	"github.com/ranchhand-app/ranchhand/internal/ranchlog"
	"github.com/ranchhand-app/ranchhand/internal/rbac"
	"github.com/ranchhand-app/ranchhand/internal/recipes"
	"github.com/ranchhand-app/ranchhand/internal/todos"
	"github.com/ranchhand-app/ranchhand/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Middleware MiddlewareConfig

	AuthHandler     *auth.Handler
	OrdersHandler   *orders.Handler
	QuotesHandler   *quotes.Handler
	CatalogHandler  *catalog.Handler
	FundHandler     *fund.Handler
	MapHandler      *gamemap.Handler
	TodosHandler    *todos.Handler
	PostersHandler  *posters.Handler
	RecipesHandler  *recipes.Handler
	LogsHandler     *ranchlog.Handler
	ActivityHandler *activity.Handler
	UsersHandler    *users.Handler

	RBACMiddleware rbac.Middleware
}

// NewRouter constructs the chi.Router with ranchhand defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(params.Middleware) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r)

		guard := params.RBACMiddleware
		params.OrdersHandler.MountRoutes(r, guard)
		params.QuotesHandler.MountRoutes(r, guard)
		params.CatalogHandler.MountRoutes(r, guard)
		params.FundHandler.MountRoutes(r, guard)
		params.MapHandler.MountRoutes(r, guard)
		params.TodosHandler.MountRoutes(r, guard)
		params.PostersHandler.MountRoutes(r, guard)
		params.RecipesHandler.MountRoutes(r, guard)
		params.LogsHandler.MountRoutes(r, guard)
		params.ActivityHandler.MountRoutes(r, guard)
		params.UsersHandler.MountRoutes(r, guard)
	})

	return r
}
