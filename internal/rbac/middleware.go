package rbac

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ranchhand-app/ranchhand/internal/shared"
)

// CapabilitySource resolves capabilities for a user. Satisfied by *Service.
type CapabilitySource interface {
	EffectiveCapabilities(ctx context.Context, userID int64) ([]string, error)
}

// Middleware wires capability checks into HTTP handlers.
type Middleware struct {
	Source CapabilitySource
	Logger *slog.Logger
}

// RequireAny ensures the current user holds at least one of the required
// capabilities.
func (m Middleware) RequireAny(caps ...string) func(http.Handler) http.Handler {
	normalized := normalizeCapabilities(caps)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(normalized) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			granted, ok := m.grantedFor(w, r)
			if !ok {
				return
			}
			if hasAny(granted, normalized) {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}

// RequireAll ensures the current user holds every required capability.
func (m Middleware) RequireAll(caps ...string) func(http.Handler) http.Handler {
	normalized := normalizeCapabilities(caps)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(normalized) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			granted, ok := m.grantedFor(w, r)
			if !ok {
				return
			}
			if hasAll(granted, normalized) {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}

func (m Middleware) grantedFor(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	userID, ok := m.currentUserID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return nil, false
	}
	granted, err := m.Source.EffectiveCapabilities(r.Context(), userID)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Error("rbac resolve capabilities", slog.Any("error", err))
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil, false
	}
	return granted, true
}

func (m Middleware) currentUserID(r *http.Request) (int64, bool) {
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
		if m.Logger != nil {
			m.Logger.Error("rbac parse user id", slog.String("value", raw))
		}
		return 0, false
	}
	return id, true
}

func normalizeCapabilities(caps []string) []string {
	unique := make(map[string]struct{}, len(caps))
	for _, c := range caps {
		c = strings.TrimSpace(strings.ToLower(c))
		if c == "" {
			continue
		}
		unique[c] = struct{}{}
	}
	normalized := make([]string, 0, len(unique))
	for c := range unique {
		normalized = append(normalized, c)
	}
	return normalized
}

func hasAny(granted []string, required []string) bool {
	set := make(map[string]struct{}, len(granted))
	for _, c := range granted {
		set[strings.ToLower(c)] = struct{}{}
	}
	for _, c := range required {
		if _, ok := set[c]; ok {
			return true
		}
	}
	return false
}

func hasAll(granted []string, required []string) bool {
	set := make(map[string]struct{}, len(granted))
	for _, c := range granted {
		set[strings.ToLower(c)] = struct{}{}
	}
	for _, c := range required {
		if _, ok := set[c]; !ok {
			return false
		}
	}
	return true
}
