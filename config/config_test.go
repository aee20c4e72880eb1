package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, DriverRedis, cfg.Storage)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 30, cfg.TrendDays)
	assert.Equal(t, int32(4), cfg.PostgresMaxConns)
	assert.True(t, cfg.Seed)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("SCHOOL_STORAGE", "Memory")
	t.Setenv("SCHOOL_REDIS_DB", "3")
	t.Setenv("SCHOOL_TRENDDAYS", "7")
	t.Setenv("SCHOOL_SEED", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 7, cfg.TrendDays)
	assert.False(t, cfg.Seed)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SCHOOL_PORT=9090\nSCHOOL_REDIS_PREFIX=school:\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SCHOOL_PORT")
		os.Unsetenv("SCHOOL_REDIS_PREFIX")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "school:", cfg.RedisPrefix)
}

func TestLoadMissingDotEnvIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.NoError(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SCHOOL_STORAGE", "mongo")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("SCHOOL_STORAGE", "memory")
	t.Setenv("SCHOOL_TRENDDAYS", "0")
	_, err = Load("")
	assert.Error(t, err)

	t.Setenv("SCHOOL_TRENDDAYS", "367")
	_, err = Load("")
	assert.Error(t, err)
}
