package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/MohamedX1935/SkillBoard/internal/apperr"
	"github.com/MohamedX1935/SkillBoard/internal/config"
	"github.com/MohamedX1935/SkillBoard/internal/models"
	"github.com/MohamedX1935/SkillBoard/internal/sessions"
	"github.com/MohamedX1935/SkillBoard/internal/tokens"
	"github.com/MohamedX1935/SkillBoard/internal/users"
	"github.com/MohamedX1935/SkillBoard/pkg/logger"
	"github.com/MohamedX1935/SkillBoard/pkg/middleware"
	"github.com/MohamedX1935/SkillBoard/pkg/response"
	"github.com/gin-gonic/gin"
)

// LoginRequest is the credential payload of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login, register and refresh.
type AuthResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	User         *models.User `json:"user,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg       *config.Config
	users     *users.Service
	sessions  *sessions.Service
	blacklist *sessions.Blacklist
}

// NewAuthHandler builds the handler. s and bl may be nil, which disables
// refresh tokens and access-token revocation respectively.
func NewAuthHandler(cfg *config.Config, u *users.Service, s *sessions.Service, bl *sessions.Blacklist) *AuthHandler {
	return &AuthHandler{cfg: cfg, users: u, sessions: s, blacklist: bl}
}

// Register routes under /auth. public takes no credentials; protected is
// already behind Authenticate.
func (h *AuthHandler) Register(public, protected *gin.RouterGroup, admin gin.HandlerFunc) {
	public.POST("/auth/login", h.Login)
	public.POST("/auth/refresh", h.Refresh)
	protected.POST("/auth/logout", h.Logout)
	protected.GET("/auth/me", h.Me)
	protected.POST("/auth/register", admin, h.RegisterUser)
}

func (h *AuthHandler) issue(c *gin.Context, u *models.User, withRefresh bool) (*AuthResponse, error) {
	access, err := tokens.GenerateAccessToken(h.cfg, u, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	out := &AuthResponse{Token: access, User: u}
	if withRefresh && h.sessions != nil {
		rft, err := h.sessions.CreateSession(c.Request.Context(), u.ID.Hex())
		if err != nil {
			return nil, apperr.Internal(err)
		}
		out.RefreshToken = rft
	}
	return out, nil
}

// Login exchanges email and password for an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.users.Authenticate(c.Request.Context(), models.NormalizeEmail(req.Email), req.Password)
	if err != nil {
		if apperr.Is(err, apperr.KindAuth) {
			logger.WithFields(logger.Fields{"request_id": c.GetString("request_id")}).Info("login rejected")
		}
		response.Error(c, err)
		return
	}
	out, err := h.issue(c, u, true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// RegisterUser lets an administrator create an account and returns a token
// for it.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var in models.NewUser
	if !bindNewUser(c, &in) {
		return
	}
	u, err := h.users.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	out, err := h.issue(c, u, false)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, out)
}

// Refresh consumes a refresh token and returns a new access token together
// with the next refresh token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if !bindJSON(c, &req) {
		return
	}
	if h.sessions == nil {
		response.Fail(c, http.StatusUnauthorized, "Token invalide")
		return
	}
	sess, next, err := h.sessions.Rotate(c.Request.Context(), req.RefreshToken)
	if errors.Is(err, sessions.ErrInvalidRefresh) {
		response.Fail(c, http.StatusUnauthorized, "Token invalide")
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	u, err := h.users.Get(c.Request.Context(), sess.UserID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			_ = h.sessions.DeleteRefresh(c.Request.Context(), next)
			response.Fail(c, http.StatusUnauthorized, "Token invalide")
			return
		}
		response.Error(c, err)
		return
	}
	access, err := tokens.GenerateAccessToken(h.cfg, u, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		response.Error(c, apperr.Internal(err))
		return
	}
	response.Success(c, http.StatusOK, AuthResponse{Token: access, RefreshToken: next})
}

// Logout revokes the presented access token for its remaining lifetime and
// drops the refresh session when one is supplied.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	raw, exp := middleware.AccessToken(c)
	if err := h.blacklist.Add(c.Request.Context(), raw, time.Until(exp)); err != nil {
		response.Error(c, apperr.Internal(err))
		return
	}
	if req.RefreshToken != "" && h.sessions != nil {
		if err := h.sessions.DeleteRefresh(c.Request.Context(), req.RefreshToken); err != nil {
			response.Error(c, apperr.Internal(err))
			return
		}
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Déconnexion réussie"})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	u, err := h.users.Get(c.Request.Context(), id.ID.Hex())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}
