package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdminUserIDs(t *testing.T) {
	assert.Nil(t, ParseAdminUserIDs(""))
	assert.Equal(t, []string{"user_1", "42"}, ParseAdminUserIDs(" user_1 ,42,,user_1, "))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STREAK_MODE", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("ADMIN_USER_IDS", "a,b")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StreakPerCompletion, cfg.StreakMode)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 72*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"a", "b"}, cfg.AdminUserIDs)
}

func TestLoadConfigRejectsUnknownStreakMode(t *testing.T) {
	t.Setenv("STREAK_MODE", "weekly")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigProductionNeedsSecret(t *testing.T) {
	t.Setenv("ENV", "Production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite", DBName: "learnhub"}
	assert.Equal(t, "learnhub.db", cfg.DSN())

	cfg.DatabaseURL = "postgres://u:p@db:5432/x"
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DSN())
}
