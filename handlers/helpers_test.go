package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MohamedX1935/SkillBoard/internal/config"
	"github.com/MohamedX1935/SkillBoard/internal/models"
	"github.com/MohamedX1935/SkillBoard/internal/sessions"
	"github.com/MohamedX1935/SkillBoard/internal/users"
	"github.com/MohamedX1935/SkillBoard/pkg/validation"
	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@skillboard.io"
	adminPassword = "admin-pass"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type testAPI struct {
	t     *testing.T
	r     *gin.Engine
	cfg   *config.Config
	users *users.Service
	redis *mr.Miniredis
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	cfg := &config.Config{}
	cfg.JWT.Secret = "handlers-test-secret-32-bytes-xxxx"
	cfg.JWT.AccessTokenTTL = time.Hour
	cfg.CORS.AllowedOrigins = []string{"*"}

	svc := users.NewService(users.NewMemoryRepository())
	created, err := svc.EnsureAdmin(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)
	require.True(t, created)

	r := NewRouter(Deps{
		Config:    cfg,
		Users:     svc,
		Sessions:  sessions.NewService(sessions.NewMemoryRepository(), time.Hour),
		Blacklist: sessions.NewBlacklist(redis.NewClient(&redis.Options{Addr: m.Addr()})),
		Now:       func() time.Time { return time.Date(2024, 3, 9, 10, 30, 0, 0, time.UTC) },
	})
	return &testAPI{t: t, r: r, cfg: cfg, users: svc, redis: m}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

// decode checks the status, unwraps the envelope and decodes data into dst
// (when non-nil).
func decode(t *testing.T, w *httptest.ResponseRecorder, status int, dst interface{}) envelope {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, status < 400, env.Success)
	if dst != nil {
		require.NoError(t, json.Unmarshal(env.Data, dst))
	}
	return env
}

func (a *testAPI) login(email, password string) AuthResponse {
	a.t.Helper()
	var out AuthResponse
	decode(a.t, a.do(http.MethodPost, "/api/auth/login", "", LoginRequest{Email: email, Password: password}), http.StatusOK, &out)
	require.NotEmpty(a.t, out.Token)
	return out
}

func (a *testAPI) adminToken() string {
	return a.login(adminEmail, adminPassword).Token
}

// createUser creates a plain user through the API and returns it with a token.
func (a *testAPI) createUser(adminTok, name, email string) (*models.User, string) {
	a.t.Helper()
	var u models.User
	decode(a.t, a.do(http.MethodPost, "/api/users", adminTok, gin.H{"name": name, "email": email, "password": "pw-" + name}), http.StatusCreated, &u)
	return &u, a.login(email, "pw-"+name).Token
}
