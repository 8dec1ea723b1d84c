package handlers

import (
	"net/http"

	"github.com/MohamedX1935/SkillBoard/internal/models"
	"github.com/MohamedX1935/SkillBoard/internal/users"
	"github.com/MohamedX1935/SkillBoard/pkg/response"
	"github.com/gin-gonic/gin"
)

// TrainingsHandler serves /api/trainings.
type TrainingsHandler struct {
	users *users.Service
}

func NewTrainingsHandler(u *users.Service) *TrainingsHandler { return &TrainingsHandler{users: u} }

func (h *TrainingsHandler) Register(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	g := rg.Group("/trainings")
	g.GET("", h.List)
	g.POST("/:userId", admin, h.Add)
	g.PUT("/:userId/:trainingId", admin, h.Update)
	g.DELETE("/:userId/:trainingId", admin, h.Delete)
}

// List supports ?userId= and ?status=. Without userId the trainings of all
// users are flattened and tagged with their owner.
func (h *TrainingsHandler) List(c *gin.Context) {
	status := models.TrainingStatus(c.Query("status"))
	if userID := c.Query("userId"); userID != "" {
		out, err := h.users.TrainingsOf(c.Request.Context(), userID, status)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, out)
		return
	}
	out, err := h.users.AllTrainings(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *TrainingsHandler) Add(c *gin.Context) {
	var in models.NewTraining
	if !bindJSON(c, &in) {
		return
	}
	t, err := h.users.AddTraining(c.Request.Context(), c.Param("userId"), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t)
}

func (h *TrainingsHandler) Update(c *gin.Context) {
	var p models.TrainingPatch
	if !bindPatch(c, &p) {
		return
	}
	t, err := h.users.UpdateTraining(c.Request.Context(), c.Param("userId"), c.Param("trainingId"), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *TrainingsHandler) Delete(c *gin.Context) {
	trainingID := c.Param("trainingId")
	if err := h.users.DeleteTraining(c.Request.Context(), c.Param("userId"), trainingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": trainingID})
}
