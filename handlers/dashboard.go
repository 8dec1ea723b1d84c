package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/MohamedX1935/SkillBoard/internal/apperr"
	"github.com/MohamedX1935/SkillBoard/internal/report"
	"github.com/MohamedX1935/SkillBoard/internal/users"
	"github.com/MohamedX1935/SkillBoard/pkg/metrics"
	"github.com/MohamedX1935/SkillBoard/pkg/response"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves /api/dashboard.
type DashboardHandler struct {
	users *users.Service
	now   func() time.Time
}

func NewDashboardHandler(u *users.Service, now func() time.Time) *DashboardHandler {
	if now == nil {
		now = time.Now
	}
	return &DashboardHandler{users: u, now: now}
}

func (h *DashboardHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/dashboard")
	g.GET("/metrics", h.Metrics)
	g.GET("/report", h.Report)
}

func (h *DashboardHandler) Metrics(c *gin.Context) {
	list, err := h.users.List(c.Request.Context(), users.Filter{})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, report.Compute(list))
}

// Report renders the whole PDF before writing anything so a failure can
// still be reported as JSON.
func (h *DashboardHandler) Report(c *gin.Context) {
	list, err := h.users.List(c.Request.Context(), users.Filter{})
	if err != nil {
		response.Error(c, err)
		return
	}
	var buf bytes.Buffer
	if err := report.RenderPDF(&buf, list, h.now()); err != nil {
		response.Error(c, apperr.Internal(err))
		return
	}
	metrics.ReportsGenerated.Inc()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
