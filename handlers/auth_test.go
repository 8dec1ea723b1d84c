package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/MohamedX1935/SkillBoard/internal/models"
	"github.com/MohamedX1935/SkillBoard/internal/tokens"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	api := newTestAPI(t)
	out := api.login("ADMIN@skillboard.io", adminPassword)
	assert.NotEmpty(t, out.RefreshToken)
	require.NotNil(t, out.User)
	assert.Equal(t, models.RoleAdmin, out.User.Role)
	assert.Equal(t, "Administrateur", out.User.Name)

	claims, err := tokens.ParseAccessToken(api.cfg.JWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID.Hex(), claims.UserID)
}

func TestLogin_NeverReturnsPassword(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(http.MethodPost, "/api/auth/login", "", LoginRequest{Email: adminEmail, Password: adminPassword})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestLogin_MissingFields(t *testing.T) {
	api := newTestAPI(t)
	env := decode(t, api.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": adminEmail}), http.StatusBadRequest, nil)
	assert.Equal(t, "Email et mot de passe requis", env.Message)
}

func TestLogin_UniformFailure(t *testing.T) {
	api := newTestAPI(t)
	wrongPw := decode(t, api.do(http.MethodPost, "/api/auth/login", "", LoginRequest{Email: adminEmail, Password: "nope"}), http.StatusUnauthorized, nil)
	unknown := decode(t, api.do(http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "ghost@x.com", Password: "nope"}), http.StatusUnauthorized, nil)
	assert.Equal(t, "Identifiants invalides", wrongPw.Message)
	assert.Equal(t, wrongPw.Message, unknown.Message)
}

func TestRegister_AdminOnly(t *testing.T) {
	api := newTestAPI(t)
	admin := api.adminToken()

	var out AuthResponse
	decode(t, api.do(http.MethodPost, "/api/auth/register", admin, gin.H{
		"name": "Carol", "email": "carol@x.com", "password": "pw", "position": "Dev",
	}), http.StatusCreated, &out)
	assert.NotEmpty(t, out.Token)
	assert.Empty(t, out.RefreshToken)
	assert.Equal(t, models.RoleUser, out.User.Role)

	// the new account can log in with the same password
	userTok := api.login("carol@x.com", "pw").Token

	env := decode(t, api.do(http.MethodPost, "/api/auth/register", userTok, gin.H{
		"name": "Eve", "email": "eve@x.com", "password": "pw",
	}), http.StatusForbidden, nil)
	assert.Equal(t, "Accès refusé", env.Message)
}

func TestRegister_Validation(t *testing.T) {
	api := newTestAPI(t)
	admin := api.adminToken()

	env := decode(t, api.do(http.MethodPost, "/api/auth/register", admin, gin.H{"email": "x@x.com"}), http.StatusBadRequest, nil)
	assert.Equal(t, "Nom, email et mot de passe requis", env.Message)

	decode(t, api.do(http.MethodPost, "/api/auth/register", admin, gin.H{
		"name": "X", "email": "x@x.com", "password": "pw", "role": "Superuser",
	}), http.StatusBadRequest, nil)

	env = decode(t, api.do(http.MethodPost, "/api/auth/register", admin, gin.H{
		"name": "Dup", "email": "Admin@SkillBoard.io", "password": "pw",
	}), http.StatusConflict, nil)
	assert.Equal(t, "Un utilisateur existe déjà avec cet email", env.Message)
}

func TestCreateUser_PasswordTooLong(t *testing.T) {
	api := newTestAPI(t)
	admin := api.adminToken()
	body := gin.H{"name": "Long", "email": "long@x.com", "password": strings.Repeat("p", 80)}

	for _, path := range []string{"/api/auth/register", "/api/users"} {
		env := decode(t, api.do(http.MethodPost, path, admin, body), http.StatusBadRequest, nil)
		assert.Equal(t, "Mot de passe trop long (72 octets maximum)", env.Message, path)
	}
}

func TestAuth_MissingAndInvalidTokens(t *testing.T) {
	api := newTestAPI(t)
	env := decode(t, api.do(http.MethodGet, "/api/users", "", nil), http.StatusUnauthorized, nil)
	assert.Equal(t, "Token manquant", env.Message)

	env = decode(t, api.do(http.MethodGet, "/api/users", "garbage", nil), http.StatusUnauthorized, nil)
	assert.Equal(t, "Token invalide", env.Message)
}

func TestAuth_ExpiredTokenRejected(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(adminEmail, adminPassword).User
	expired, err := tokens.GenerateAccessToken(api.cfg, admin, -time.Minute)
	require.NoError(t, err)
	decode(t, api.do(http.MethodGet, "/api/users", expired, nil), http.StatusUnauthorized, nil)
}

func TestMe(t *testing.T) {
	api := newTestAPI(t)
	var u models.User
	decode(t, api.do(http.MethodGet, "/api/auth/me", api.adminToken(), nil), http.StatusOK, &u)
	assert.Equal(t, adminEmail, u.Email)
}

func TestRefresh_RotatesToken(t *testing.T) {
	api := newTestAPI(t)
	first := api.login(adminEmail, adminPassword)

	var out AuthResponse
	decode(t, api.do(http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": first.RefreshToken}), http.StatusOK, &out)
	assert.NotEmpty(t, out.Token)
	assert.NotEqual(t, first.RefreshToken, out.RefreshToken)

	// the old refresh token was consumed
	decode(t, api.do(http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": first.RefreshToken}), http.StatusUnauthorized, nil)
	decode(t, api.do(http.MethodGet, "/api/auth/me", out.Token, nil), http.StatusOK, nil)
}

func TestLogout_RevokesAccessAndRefresh(t *testing.T) {
	api := newTestAPI(t)
	sess := api.login(adminEmail, adminPassword)

	decode(t, api.do(http.MethodPost, "/api/auth/logout", sess.Token, gin.H{"refreshToken": sess.RefreshToken}), http.StatusOK, nil)

	env := decode(t, api.do(http.MethodGet, "/api/auth/me", sess.Token, nil), http.StatusUnauthorized, nil)
	assert.Equal(t, "Token invalide", env.Message)
	decode(t, api.do(http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": sess.RefreshToken}), http.StatusUnauthorized, nil)

	// a fresh login still works
	decode(t, api.do(http.MethodGet, "/api/auth/me", api.adminToken(), nil), http.StatusOK, nil)
}

func TestLogout_WithoutBody(t *testing.T) {
	api := newTestAPI(t)
	tok := api.adminToken()
	decode(t, api.do(http.MethodPost, "/api/auth/logout", tok, nil), http.StatusOK, nil)
	decode(t, api.do(http.MethodGet, "/api/auth/me", tok, nil), http.StatusUnauthorized, nil)
}
