package handlers

import (
	"net/http"

	"github.com/MohamedX1935/SkillBoard/internal/models"
	"github.com/MohamedX1935/SkillBoard/internal/users"
	"github.com/MohamedX1935/SkillBoard/pkg/response"
	"github.com/gin-gonic/gin"
)

// SkillsHandler serves /api/skills.
type SkillsHandler struct {
	users *users.Service
}

func NewSkillsHandler(u *users.Service) *SkillsHandler { return &SkillsHandler{users: u} }

func (h *SkillsHandler) Register(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	g := rg.Group("/skills")
	g.GET("", h.List)
	g.POST("/:userId", admin, h.Add)
	g.PUT("/:userId/:skillId", admin, h.Update)
	g.DELETE("/:userId/:skillId", admin, h.Delete)
}

// List returns one user's skills with ?userId=, otherwise every user's.
func (h *SkillsHandler) List(c *gin.Context) {
	if userID := c.Query("userId"); userID != "" {
		out, err := h.users.SkillsOf(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, out)
		return
	}
	out, err := h.users.AllSkills(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *SkillsHandler) Add(c *gin.Context) {
	var in models.NewSkill
	if !bindJSON(c, &in) {
		return
	}
	s, err := h.users.AddSkill(c.Request.Context(), c.Param("userId"), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, s)
}

func (h *SkillsHandler) Update(c *gin.Context) {
	var p models.SkillPatch
	if !bindPatch(c, &p) {
		return
	}
	s, err := h.users.UpdateSkill(c.Request.Context(), c.Param("userId"), c.Param("skillId"), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, s)
}

func (h *SkillsHandler) Delete(c *gin.Context) {
	skillID := c.Param("skillId")
	if err := h.users.DeleteSkill(c.Request.Context(), c.Param("userId"), skillID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": skillID})
}
