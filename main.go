package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MohamedX1935/SkillBoard/handlers"
	"github.com/MohamedX1935/SkillBoard/internal/config"
	"github.com/MohamedX1935/SkillBoard/internal/database"
	"github.com/MohamedX1935/SkillBoard/internal/sessions"
	"github.com/MohamedX1935/SkillBoard/internal/users"
	"github.com/MohamedX1935/SkillBoard/pkg/logger"
	"github.com/MohamedX1935/SkillBoard/pkg/metrics"
	"github.com/MohamedX1935/SkillBoard/pkg/middleware"
	"github.com/MohamedX1935/SkillBoard/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal, LOG_FORMAT: json|text
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.SetFormat(os.Getenv("LOG_FORMAT"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.JWT.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v admin=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Admin.Enabled())

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validation.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to Redis early so the rate limiter, sessions and blacklist can use it
	var rdb *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		c := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := c.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
			_ = c.Close()
		} else {
			rdb = c
			defer func() { _ = rdb.Close() }()
			logger.Infof("connected to Redis: %s", addr)
		}
	}

	var limiter gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			limiter = middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		} else {
			limiter = middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
		logger.Infof("rate limiter enabled: rps=%.1f burst=%d redis=%v", cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.UseRedis && rdb != nil)
	}

	// Retry with backoff to tolerate the database starting after the API
	client, err := database.Connect(ctx, cfg.MongoDB, 5)
	if err != nil {
		logger.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDB.Database)

	userRepo := users.NewMongoUserRepository(db.Collection("users"))
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatalf("failed to create user indexes: %v", err)
	}
	userSvc := users.NewService(userRepo)

	if created, err := userSvc.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logger.Errorf("failed to provision administrator: %v", err)
	} else if created {
		logger.Infof("administrator account created for %s", cfg.Admin.Email)
	}

	// Prefer Redis-based sessions when available, otherwise Mongo with a TTL index
	var sessionRepo sessions.Repository
	if rdb != nil {
		sessionRepo = sessions.NewRedisRepository(rdb, "session:")
		logger.Infof("using Redis for session storage")
	} else {
		mrepo := sessions.NewMongoRepository(db.Collection("sessions"))
		if err := mrepo.EnsureIndexes(ctx); err != nil {
			logger.Warnf("failed to create session indexes: %v", err)
		}
		sessionRepo = mrepo
	}
	sessionsSvc := sessions.NewService(sessionRepo, cfg.JWT.RefreshTokenTTL)

	r := handlers.NewRouter(handlers.Deps{
		Config:    cfg,
		Users:     userSvc,
		Sessions:  sessionsSvc,
		Blacklist: sessions.NewBlacklist(rdb),
		RateLimit: limiter,
	})

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when MongoDB (and Redis, when configured) answer
	r.GET("/ready", func(c *gin.Context) {
		pctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		deps := map[string]bool{"mongo": client.Ping(pctx, nil) == nil}
		if cfg.Redis.Host != "" {
			deps["redis"] = rdb != nil && rdb.Ping(pctx).Err() == nil
		}
		status, state := http.StatusOK, "ready"
		for _, ok := range deps {
			if !ok {
				status, state = http.StatusServiceUnavailable, "not_ready"
			}
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("SkillBoard API listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
