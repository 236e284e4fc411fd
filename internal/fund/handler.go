package fund

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

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

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	summary, err := h.service.Summary(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("fund summary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.transact(w, r, h.service.Deposit)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.transact(w, r, h.service.Withdraw)
}

func (h *Handler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req AdjustRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	entry, err := h.service.Adjust(r.Context(), req.NewBalance, req.Description, shared.ActorFromContext(r.Context()))
	if err != nil {
		h.logger.Error("adjust fund", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

type transactFn func(ctx context.Context, amount decimal.Decimal, description string, actor shared.Actor) (*Entry, error)

func (h *Handler) transact(w http.ResponseWriter, r *http.Request, fn transactFn) {
	var req TransactionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	entry, err := fn(r.Context(), req.Amount, req.Description, shared.ActorFromContext(r.Context()))
	if err != nil {
		h.logger.Error("fund transaction", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
	default:
		httpx.RespondError(w, err)
	}
}
