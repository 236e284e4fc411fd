package ranchlog

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

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
	category, ok := h.categoryFilter(w, r)
	if !ok {
		return
	}
	entries, err := h.service.List(r.Context(), category)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"logs": entries})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	id, err := h.service.Create(r.Context(), req, shared.ActorFromContext(r.Context()))
	if err != nil {
		h.logger.Error("create log entry", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid log id", httpx.ErrValidation))
		return
	}
	if err := h.service.Delete(r.Context(), id, shared.ActorFromContext(r.Context())); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	category, ok := h.categoryFilter(w, r)
	if !ok {
		return
	}

	filename := fmt.Sprintf("ranch-logs-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.service.ExportCSV(r.Context(), category, w); err != nil {
		h.logger.Error("export logs", slog.Any("error", err))
	}
}

func (h *Handler) categoryFilter(w http.ResponseWriter, r *http.Request) (*LogCategory, bool) {
	raw := r.URL.Query().Get("category")
	if raw == "" {
		return nil, true
	}
	category := LogCategory(raw)
	if !ValidCategory(category) {
		httpx.RespondError(w, fmt.Errorf("%w: unknown category %q", httpx.ErrValidation, raw))
		return nil, false
	}
	return &category, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.RespondError(w, fmt.Errorf("%w: log entry", httpx.ErrNotFound))
	case errors.Is(err, ErrInvalidCategory):
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
	default:
		httpx.RespondError(w, err)
	}
}

func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny("logs.view"))
		r.Get("/logs", h.List)
		r.Get("/logs/export", h.Export)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAll("logs.edit"))
		r.Post("/logs", h.Create)
		r.Delete("/logs/{id}", h.Delete)
	})
}
