package posters

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ranchhand-app/ranchhand/internal/platform/httpx"
	"github.com/ranchhand-app/ranchhand/internal/rbac"
	"github.com/ranchhand-app/ranchhand/internal/shared"
)

// maxUploadBytes caps a poster upload at 10 MiB.
const maxUploadBytes = 10 << 20

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	posters, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list posters", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"posters": posters})
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		httpx.RespondError(w, fmt.Errorf("%w: title required", httpx.ErrValidation))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: image file required", httpx.ErrValidation))
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		httpx.RespondError(w, fmt.Errorf("%w: only image uploads are accepted", httpx.ErrValidation))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("read upload: %w", err))
		return
	}
	if len(data) > maxUploadBytes {
		httpx.RespondError(w, fmt.Errorf("%w: image exceeds 10 MiB", httpx.ErrValidation))
		return
	}

	poster, err := h.service.Upload(r.Context(), title, mimeType, data, shared.ActorFromContext(r.Context()))
	if err != nil {
		h.logger.Error("upload poster", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, poster)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid poster id", httpx.ErrValidation))
		return
	}
	if err := h.service.Delete(r.Context(), id, shared.ActorFromContext(r.Context())); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.RespondError(w, fmt.Errorf("%w: poster", httpx.ErrNotFound))
		case errors.Is(err, shared.ErrForbidden):
			httpx.RespondError(w, httpx.ErrForbidden)
		default:
			httpx.RespondError(w, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MountRoutes(r chi.Router, guard rbac.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAny("posters.view"))
		r.Get("/posters", h.List)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAll("posters.upload"))
		r.Post("/posters", h.Upload)
		r.Delete("/posters/{id}", h.Delete)
	})
}
