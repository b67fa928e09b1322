package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "ledger.events", cfg.Events.Stream)
	assert.Equal(t, []string{"https://*", "http://*"}, cfg.Server.AllowedOrigins)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
}

func TestLoad_EnvFileAndEnvironment(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DATABASE_NAME=ledger_test\nSERVER_PORT=8081\n"), 0o600))
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load(viper.New(), envFile)
	require.NoError(t, err)

	assert.Equal(t, "ledger_test", cfg.Database.Name)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Redis.DB)
}
