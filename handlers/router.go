package handlers

import (
	"net/http"
	"time"

	"github.com/MohamedX1935/SkillBoard/internal/config"
	"github.com/MohamedX1935/SkillBoard/internal/models"
	"github.com/MohamedX1935/SkillBoard/internal/sessions"
	"github.com/MohamedX1935/SkillBoard/internal/users"
	"github.com/MohamedX1935/SkillBoard/pkg/middleware"
	"github.com/MohamedX1935/SkillBoard/pkg/response"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps are the services the API routes are built from.
type Deps struct {
	Config    *config.Config
	Users     *users.Service
	Sessions  *sessions.Service   // optional: enables refresh tokens
	Blacklist *sessions.Blacklist // optional: enables logout revocation
	RateLimit gin.HandlerFunc     // optional
	Now       func() time.Time
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.AllowedOrigins
	}
	return cc
}

// NewRouter wires the global middleware, the API under /api, the banner and
// the 404 fallback.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.Recovery())
	r.Use(cors.New(corsConfig(d.Config.CORS)))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "SkillBoard API"})
	})
	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, "Route "+c.Request.URL.Path+" introuvable")
	})

	limit := d.RateLimit
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}

	public := r.Group("/api", limit)
	protected := r.Group("/api", middleware.Authenticate(d.Config.JWT.Secret, d.Blacklist, d.Users), limit)
	admin := middleware.Authorize(models.RoleAdmin)

	NewAuthHandler(d.Config, d.Users, d.Sessions, d.Blacklist).Register(public, protected, admin)
	NewUsersHandler(d.Users, d.Sessions).Register(protected, admin)
	NewSkillsHandler(d.Users).Register(protected, admin)
	NewTrainingsHandler(d.Users).Register(protected, admin)
	NewDashboardHandler(d.Users, d.Now).Register(protected)

	RegisterSwagger(r)
	return r
}
