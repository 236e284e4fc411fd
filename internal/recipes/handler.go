package recipes

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ranchhand-app/ranchhand/internal/platform/httpx"
	"github.com/ranchhand-app/ranchhand/internal/rbac"
	"github.com/ranchhand-app/ranchhand/internal/shared"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	book := Book(r.URL.Query().Get("book"))
	search := r.URL.Query().Get("search")

	recipes, err := h.service.List(r.Context(), book, search)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"recipes": recipes})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}
	recipe, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, recipe)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRecipeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	recipe, err := h.service.Create(r.Context(), req, shared.ActorFromContext(r.Context()))
	if err != nil {
		h.logger.Error("create recipe", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, recipe)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}
	var req UpdateRecipeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	recipe, err := h.service.Update(r.Context(), id, req, shared.ActorFromContext(r.Context()))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, recipe)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id, shared.ActorFromContext(r.Context())); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) recipeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid recipe id", httpx.ErrValidation))
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.RespondError(w, fmt.Errorf("%w: recipe", httpx.ErrNotFound))
	case errors.Is(err, ErrInvalidBook):
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
	default:
		httpx.RespondError(w, err)
	}
}

func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny("recipes.view"))
		r.Get("/recipes", h.List)
		r.Get("/recipes/{id}", h.Get)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAll("recipes.edit"))
		r.Post("/recipes", h.Create)
		r.Patch("/recipes/{id}", h.Update)
		r.Delete("/recipes/{id}", h.Delete)
	})
}
