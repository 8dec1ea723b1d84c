package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/MohamedX1935/SkillBoard/internal/apperr"
	"github.com/MohamedX1935/SkillBoard/internal/models"
	"github.com/MohamedX1935/SkillBoard/internal/sessions"
	"github.com/MohamedX1935/SkillBoard/internal/tokens"
	"github.com/MohamedX1935/SkillBoard/pkg/logger"
	"github.com/MohamedX1935/SkillBoard/pkg/metrics"
	"github.com/MohamedX1935/SkillBoard/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	identityKey    = "identity"
	accessTokenKey = "access_token"
	tokenExpiryKey = "access_token_exp"

	msgTokenMissing = "Token manquant"
	msgTokenInvalid = "Token invalide"
	msgForbidden    = "Accès refusé"
)

// UserLookup resolves the subject of a token to a stored user.
type UserLookup interface {
	Get(ctx context.Context, id string) (*models.User, error)
}

// Authenticate verifies the Bearer token, rejects revoked tokens and loads
// the user the token was issued to. The role is always read from the store,
// never trusted from the token.
func Authenticate(secret string, bl *sessions.Blacklist, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			metrics.AuthFailures.WithLabelValues("missing").Inc()
			response.Fail(c, http.StatusUnauthorized, msgTokenMissing)
			return
		}
		// Expect 'Bearer <token>'
		var raw string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &raw); n != 1 {
			metrics.AuthFailures.WithLabelValues("missing").Inc()
			response.Fail(c, http.StatusUnauthorized, msgTokenMissing)
			return
		}

		claims, err := tokens.ParseAccessToken(secret, raw)
		if err != nil {
			logger.Debugf("token rejected: %v", err)
			metrics.AuthFailures.WithLabelValues("invalid").Inc()
			response.Fail(c, http.StatusUnauthorized, msgTokenInvalid)
			return
		}

		revoked, err := bl.Contains(c.Request.Context(), raw)
		if err != nil {
			logger.Warnf("blacklist lookup failed: %v", err)
		}
		if revoked {
			metrics.AuthFailures.WithLabelValues("revoked").Inc()
			response.Fail(c, http.StatusUnauthorized, msgTokenInvalid)
			return
		}

		u, err := users.Get(c.Request.Context(), claims.UserID)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				metrics.AuthFailures.WithLabelValues("unknown_user").Inc()
				response.Fail(c, http.StatusUnauthorized, msgTokenInvalid)
				return
			}
			response.Error(c, err)
			return
		}

		c.Set(identityKey, u.Identity())
		c.Set(accessTokenKey, raw)
		if claims.ExpiresAt != nil {
			c.Set(tokenExpiryKey, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

// Authorize allows the request through only when the authenticated identity
// holds one of roles.
func Authorize(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok || !id.HasRole(roles...) {
			metrics.AuthFailures.WithLabelValues("forbidden").Inc()
			response.Fail(c, http.StatusForbidden, msgForbidden)
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the identity stored by Authenticate.
func IdentityFrom(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}

// AccessToken returns the raw bearer token of the request and its expiry.
func AccessToken(c *gin.Context) (string, time.Time) {
	exp, _ := c.Get(tokenExpiryKey)
	t, _ := exp.(time.Time)
	return c.GetString(accessTokenKey), t
}
