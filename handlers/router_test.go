package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MohamedX1935/SkillBoard/internal/config"
	"github.com/MohamedX1935/SkillBoard/internal/models"
	"github.com/MohamedX1935/SkillBoard/internal/users"
	"github.com/MohamedX1935/SkillBoard/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_Banner(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"SkillBoard API"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_NotFound(t *testing.T) {
	api := newTestAPI(t)
	env := decode(t, api.do(http.MethodGet, "/api/nope", "", nil), http.StatusNotFound, nil)
	assert.Equal(t, "Route /api/nope introuvable", env.Message)
}

func TestRouter_CORSPreflight(t *testing.T) {
	api := newTestAPI(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/users", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	api.r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CORSRestrictedOrigins(t *testing.T) {
	cc := corsConfig(config.CORSConfig{AllowedOrigins: []string{"https://hr.example.com"}})
	assert.False(t, cc.AllowAllOrigins)
	assert.Equal(t, []string{"https://hr.example.com"}, cc.AllowOrigins)
	assert.True(t, corsConfig(config.CORSConfig{}).AllowAllOrigins)
}

func TestRouter_RateLimited(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "rate-limit-secret-32-bytes-xxxxxxxx"
	cfg.JWT.AccessTokenTTL = time.Hour
	r := NewRouter(Deps{
		Config:    cfg,
		Users:     users.NewService(users.NewMemoryRepository()),
		RateLimit: middleware.RateLimitMiddleware(0.01, 1),
	})

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
		return w
	}
	assert.Equal(t, http.StatusBadRequest, send().Code)
	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

// login as bootstrap admin, create a user, add then remove a skill
func TestScenario_SkillRoundTrip(t *testing.T) {
	api := newTestAPI(t)
	admin := api.adminToken()

	var u models.User
	decode(t, api.do(http.MethodPost, "/api/users", admin, gin.H{"name": "U", "email": "a@x.com", "password": "pw"}), http.StatusCreated, &u)

	var s models.Skill
	decode(t, api.do(http.MethodPost, "/api/skills/"+u.ID.Hex(), admin, gin.H{"name": "SQL", "level": "Avancé"}), http.StatusCreated, &s)

	var view users.UserSkills
	decode(t, api.do(http.MethodGet, "/api/skills?userId="+u.ID.Hex(), admin, nil), http.StatusOK, &view)
	require.Len(t, view.Skills, 1)
	assert.Equal(t, "SQL", view.Skills[0].Name)
	assert.Equal(t, models.LevelAdvanced, view.Skills[0].Level)
	assert.Equal(t, s.ID, view.Skills[0].ID)

	decode(t, api.do(http.MethodDelete, "/api/skills/"+u.ID.Hex()+"/"+s.ID.Hex(), admin, nil), http.StatusOK, nil)

	decode(t, api.do(http.MethodGet, "/api/skills?userId="+u.ID.Hex(), admin, nil), http.StatusOK, &view)
	assert.NotNil(t, view.Skills)
	assert.Empty(t, view.Skills)
}
