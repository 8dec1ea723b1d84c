package handlers

import (
	"net/http"

	"github.com/MohamedX1935/SkillBoard/internal/models"
	"github.com/MohamedX1935/SkillBoard/internal/sessions"
	"github.com/MohamedX1935/SkillBoard/internal/users"
	"github.com/MohamedX1935/SkillBoard/pkg/logger"
	"github.com/MohamedX1935/SkillBoard/pkg/response"
	"github.com/gin-gonic/gin"
)

// UsersHandler serves /api/users. Refresh sessions of a user are revoked
// when the account is deleted or its password or role changes.
type UsersHandler struct {
	users    *users.Service
	sessions *sessions.Service
}

func NewUsersHandler(u *users.Service, s *sessions.Service) *UsersHandler {
	return &UsersHandler{users: u, sessions: s}
}

func (h *UsersHandler) revoke(c *gin.Context, userID string) {
	if err := h.sessions.RevokeUser(c.Request.Context(), userID); err != nil {
		logger.Warnf("revoke sessions of %s: %v", userID, err)
	}
}

func (h *UsersHandler) Register(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	g := rg.Group("/users")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", admin, h.Create)
	g.PUT("/:id", admin, h.Update)
	g.DELETE("/:id", admin, h.Delete)
}

// List supports ?search= (name, email or position) and ?role=.
func (h *UsersHandler) List(c *gin.Context) {
	f := users.Filter{Search: c.Query("search"), Role: models.Role(c.Query("role"))}
	list, err := h.users.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *UsersHandler) Get(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *UsersHandler) Create(c *gin.Context) {
	var in models.NewUser
	if !bindNewUser(c, &in) {
		return
	}
	u, err := h.users.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u)
}

func (h *UsersHandler) Update(c *gin.Context) {
	var p models.UserPatch
	if !bindPatch(c, &p) {
		return
	}
	u, err := h.users.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	if p.Role != nil || (p.Password != nil && *p.Password != "") {
		h.revoke(c, u.ID.Hex())
	}
	response.Success(c, http.StatusOK, u)
}

func (h *UsersHandler) Delete(c *gin.Context) {
	id, err := h.users.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.revoke(c, id.Hex())
	response.Success(c, http.StatusOK, gin.H{"id": id.Hex()})
}
