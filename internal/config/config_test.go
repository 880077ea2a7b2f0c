package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"HTTP_PORT":          "8080",
		"DB_HOST":            "localhost",
		"DB_NAME":            "hiretop",
		"DB_USER":            "hiretop",
		"JWT_ACCESS_SECRET":  "access",
		"JWT_REFRESH_SECRET": "refresh",
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envFrom(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, "hiretop", cfg.App.AppName)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8081", cfg.App.WSPort)
	assert.Equal(t, "5432", cfg.Database.DBPort)
	assert.Equal(t, int32(10), cfg.Database.PoolMaxConns)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiresIn)
	assert.Equal(t, int64(5*1024*1024), cfg.Storage.MaxUploadBytes)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_MissingRequired(t *testing.T) {
	env := baseEnv()
	delete(env, "HTTP_PORT")
	delete(env, "DB_HOST")

	_, err := FromEnv(envFrom(env))
	require.Error(t, err)
	assert.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "HTTP_PORT")
	assert.Contains(t, err.Error(), "DB_HOST")
}

func TestFromEnv_InvalidDuration(t *testing.T) {
	env := baseEnv()
	env["REDIS_TTL"] = "soon"

	_, err := FromEnv(envFrom(env))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_TTL")
}

func TestFromEnv_SameJWTSecrets(t *testing.T) {
	env := baseEnv()
	env["JWT_REFRESH_SECRET"] = env["JWT_ACCESS_SECRET"]

	_, err := FromEnv(envFrom(env))
	require.Error(t, err)
}

func TestFromEnv_Overrides(t *testing.T) {
	env := baseEnv()
	env["APP_ENV"] = "production"
	env["REDIS_TTL"] = "30s"
	env["STORAGE_BUCKET"] = "media"

	cfg, err := FromEnv(envFrom(env))
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "media", cfg.Storage.Bucket)
}

func TestDatabaseFromEnv_IgnoresServerKeys(t *testing.T) {
	cfg, err := DatabaseFromEnv(envFrom(map[string]string{
		"DB_HOST": "db",
		"DB_NAME": "hiretop",
		"DB_USER": "hiretop",
	}))
	require.NoError(t, err)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "disable", cfg.DBSSLMode)

	_, err = DatabaseFromEnv(envFrom(map[string]string{"DB_HOST": "db"}))
	require.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "DB_NAME")
}
