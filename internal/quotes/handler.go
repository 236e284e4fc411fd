package quotes

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
	var statusPtr *QuoteStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := QuoteStatus(raw)
		if !ValidStatus(status) {
			httpx.RespondError(w, fmt.Errorf("%w: unknown status %q", httpx.ErrValidation, raw))
			return
		}
		statusPtr = &status
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	list, total, err := h.service.List(r.Context(), ListQuotesRequest{
		Status: statusPtr,
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.logger.Error("list quotes", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"quotes": list,
		"total":  total,
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.quoteID(w, r)
	if !ok {
		return
	}
	quote, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateQuoteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	quote, err := h.service.Create(r.Context(), req, shared.ActorFromContext(r.Context()))
	if err != nil {
		h.logger.Error("create quote", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, quote)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.quoteID(w, r)
	if !ok {
		return
	}

	var req UpdateQuoteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	quote, err := h.service.Update(r.Context(), id, req, shared.ActorFromContext(r.Context()))
	if err != nil {
		h.logger.Error("update quote", slog.Any("error", err), slog.Int64("quote_id", id))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.quoteID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id, shared.ActorFromContext(r.Context())); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	id, ok := h.quoteID(w, r)
	if !ok {
		return
	}
	quote, err := h.service.Convert(r.Context(), id, shared.ActorFromContext(r.Context()))
	if err != nil {
		h.logger.Error("convert quote", slog.Any("error", err), slog.Int64("quote_id", id))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

func (h *Handler) quoteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid quote id", httpx.ErrValidation))
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.RespondError(w, fmt.Errorf("%w: quote", httpx.ErrNotFound))
	case errors.Is(err, ErrAlreadyConverted):
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrDuplicate, err))
	case errors.Is(err, ErrInvalidStatus):
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
	default:
		httpx.RespondError(w, err)
	}
}
