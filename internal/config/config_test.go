package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	t.Setenv("MONGODB_DATABASE", "skillboard_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("JWT_SECRET", "testsecret123456789012345678901234")
	t.Setenv("PORT", "8081")
	t.Setenv("ADMIN_EMAIL", "admin@skillboard.io")
	t.Setenv("ADMIN_PASSWORD", "changeme")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, http://localhost:3000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "mongodb://localhost:27017/testdb", cfg.MongoDB.URI)
	require.Equal(t, "skillboard_test", cfg.MongoDB.Database)
	require.Equal(t, "8081", cfg.Server.Port)
	require.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenTTL)
	require.True(t, cfg.Admin.Enabled())
	require.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_MissingMongoURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestAdminConfig_Enabled(t *testing.T) {
	require.False(t, AdminConfig{Email: "a@x.com"}.Enabled())
	require.False(t, AdminConfig{Password: "secret"}.Enabled())
	require.True(t, AdminConfig{Email: "a@x.com", Password: "secret"}.Enabled())
}

func TestRedisAddr(t *testing.T) {
	require.Equal(t, "", RedisConfig{Port: "6379"}.Addr())
	require.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: "6380"}.Addr())
}

func TestJWTConfig_Validate(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.EqualError(t, cfg.JWT.Validate(), "environment variable JWT_SECRET is required")
	require.NoError(t, JWTConfig{Secret: "s3cret"}.Validate())
}
