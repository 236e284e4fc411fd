package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ranchhand-app/ranchhand/internal/auth"
	"github.com/ranchhand-app/ranchhand/internal/rbac"
	"github.com/ranchhand-app/ranchhand/internal/shared"
	"github.com/ranchhand-app/ranchhand/internal/users"
)

type stubUsers struct {
	user *users.User
}

func (s *stubUsers) FindByUsername(ctx context.Context, username string) (*users.User, error) {
	if s.user == nil || !strings.EqualFold(s.user.Username, username) {
		return nil, users.ErrNotFound
	}
	return s.user, nil
}

func (s *stubUsers) Get(ctx context.Context, id int64) (*users.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, users.ErrNotFound
	}
	return s.user, nil
}

func newAuthHandler(t *testing.T, source auth.UserSource) (*auth.Handler, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := shared.NewSessionManager(client, "test_session", time.Hour, false)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewHandler(logger, auth.NewService(source), sessions), sessions
}

func activeUser(t *testing.T, password string) *users.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &users.User{
		ID:           7,
		Username:     "hosea",
		Name:         "Hosea Matthews",
		Role:         rbac.RoleForeman,
		IsActive:     true,
		PasswordHash: string(hash),
	}
}

func doLogin(t *testing.T, handler *auth.Handler, sessions *shared.SessionManager, body string) (*httptest.ResponseRecorder, *shared.Session) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	sess, err := sessions.Load(context.Background(), req)
	require.NoError(t, err)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))

	res := httptest.NewRecorder()
	handler.Login(res, req)
	require.NoError(t, sessions.Commit(req.Context(), res, sess))
	return res, sess
}

func TestLoginSuccessBindsSession(t *testing.T) {
	user := activeUser(t, "boadicea1899")
	handler, sessions := newAuthHandler(t, &stubUsers{user: user})

	res, sess := doLogin(t, handler, sessions, `{"username":"hosea","password":"boadicea1899"}`)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "7", sess.User())

	var payload struct {
		User struct {
			Username string `json:"username"`
		} `json:"user"`
		Capabilities []string `json:"capabilities"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.Equal(t, "hosea", payload.User.Username)
	assert.Contains(t, payload.Capabilities, "fund.manage")

	cookies := res.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sess.ID, cookies[0].Value)
}

func TestLoginWrongPassword(t *testing.T) {
	handler, sessions := newAuthHandler(t, &stubUsers{user: activeUser(t, "boadicea1899")})

	res, sess := doLogin(t, handler, sessions, `{"username":"hosea","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Empty(t, sess.User())
}

func TestLoginInactiveUser(t *testing.T) {
	user := activeUser(t, "boadicea1899")
	user.IsActive = false
	handler, sessions := newAuthHandler(t, &stubUsers{user: user})

	res, _ := doLogin(t, handler, sessions, `{"username":"hosea","password":"boadicea1899"}`)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestMeRequiresSessionUser(t *testing.T) {
	handler, sessions := newAuthHandler(t, &stubUsers{})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	sess, err := sessions.Load(context.Background(), req)
	require.NoError(t, err)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))

	res := httptest.NewRecorder()
	handler.Me(res, req)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestLogoutDestroysSession(t *testing.T) {
	user := activeUser(t, "boadicea1899")
	handler, sessions := newAuthHandler(t, &stubUsers{user: user})

	_, sess := doLogin(t, handler, sessions, `{"username":"hosea","password":"boadicea1899"}`)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	res := httptest.NewRecorder()
	handler.Logout(res, req)
	require.NoError(t, sessions.Commit(req.Context(), res, sess))

	assert.Equal(t, http.StatusNoContent, res.Code)
	cookies := res.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
