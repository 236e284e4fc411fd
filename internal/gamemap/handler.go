package gamemap

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ranchhand-app/ranchhand/internal/platform/httpx"
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
	var categoryPtr *PinCategory
	if raw := r.URL.Query().Get("category"); raw != "" && raw != "all" {
		category := NormalizeCategory(PinCategory(raw))
		categoryPtr = &category
	}

	pins, err := h.service.List(r.Context(), categoryPtr)
	if err != nil {
		h.logger.Error("list pins", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"pins": pins})
}

func (h *Handler) Place(w http.ResponseWriter, r *http.Request) {
	var req PlacePinRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	pin, err := h.service.Place(r.Context(), req, shared.ActorFromContext(r.Context()))
	if err != nil {
		h.logger.Error("place pin", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, pin)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid pin id", httpx.ErrValidation))
		return
	}
	if err := h.service.Delete(r.Context(), id, shared.ActorFromContext(r.Context())); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.RespondError(w, fmt.Errorf("%w: pin", httpx.ErrNotFound))
	case errors.Is(err, ErrOutOfBounds):
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
	case errors.Is(err, shared.ErrForbidden):
		httpx.RespondError(w, httpx.ErrForbidden)
	default:
		httpx.RespondError(w, err)
	}
}
