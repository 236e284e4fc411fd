package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ranchhand-app/ranchhand/internal/platform/httpx"
	"github.com/ranchhand-app/ranchhand/internal/rbac"
	"github.com/ranchhand-app/ranchhand/internal/shared"
	"github.com/ranchhand-app/ranchhand/internal/users"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	sessionManager *shared.SessionManager
	validate       *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager) *Handler {
	return &Handler{
		logger:         logger,
		service:        service,
		sessionManager: sessions,
		validate:       validator.New(),
	}
}

// MountRoutes registers auth routes. Login is the only unauthenticated
// endpoint in the API.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
	r.Post("/auth/logout", h.Logout)
	r.Get("/auth/me", h.Me)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	User         *users.User `json:"user"`
	Capabilities []string    `json:"capabilities"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	user, err := h.service.Authenticate(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid username or password", httpx.ErrUnauthorized))
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("session missing during login")
		httpx.RespondError(w, fmt.Errorf("session unavailable"))
		return
	}
	sess.SetUser(strconv.FormatInt(user.ID, 10))

	httpx.JSON(w, http.StatusOK, sessionResponse{
		User:         user,
		Capabilities: rbac.CapabilitiesFor(user.Role),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		h.sessionManager.Destroy(sess)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.sessionUserID(r)
	if !ok {
		httpx.RespondError(w, fmt.Errorf("%w: not signed in", httpx.ErrUnauthorized))
		return
	}
	user, err := h.service.CurrentUser(r.Context(), userID)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: not signed in", httpx.ErrUnauthorized))
		return
	}
	httpx.JSON(w, http.StatusOK, sessionResponse{
		User:         user,
		Capabilities: rbac.CapabilitiesFor(user.Role),
	})
}

func (h *Handler) sessionUserID(r *http.Request) (int64, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return 0, false
	}
	raw := strings.TrimSpace(sess.User())
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
