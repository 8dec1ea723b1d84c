package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MohamedX1935/SkillBoard/pkg/logger"
	"github.com/MohamedX1935/SkillBoard/pkg/metrics"
	"github.com/MohamedX1935/SkillBoard/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RedisRateLimitMiddleware is a fixed-window counter shared by every API
// instance. Each key may make floor(rps*window)+burst requests per window.
// A nil client falls back to the in-process limiter.
func RedisRateLimitMiddleware(client *redis.Client, rps float64, burst int, window time.Duration) gin.HandlerFunc {
	if client == nil {
		return RateLimitMiddleware(rps, burst)
	}
	secs := int64(window / time.Second)
	if secs <= 0 {
		secs = 1
	}
	limit := int64(rps*float64(secs)) + int64(burst)
	ttl := time.Duration(secs+1) * time.Second

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		now := time.Now().Unix()
		key := "rl:" + limiterKey(c) + ":" + strconv.FormatInt(now/secs, 10)

		n, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Errorf("rate limit check failed: %v", err)
			response.Fail(c, http.StatusInternalServerError, "Erreur interne du serveur")
			return
		}
		if n == 1 {
			if err := client.Expire(ctx, key, ttl).Err(); err != nil {
				logger.Warnf("rate limit expire %s: %v", key, err)
			}
		}
		c.Header("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
		if n > limit {
			c.Header("Retry-After", strconv.FormatInt(secs-now%secs, 10))
			c.Header("X-RateLimit-Remaining", "0")
			metrics.RateLimitRejected.WithLabelValues("redis").Inc()
			response.Fail(c, http.StatusTooManyRequests, msgRateLimited)
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(limit-n, 10))
		metrics.RateLimitAllowed.WithLabelValues("redis").Inc()
		c.Next()
	}
}
