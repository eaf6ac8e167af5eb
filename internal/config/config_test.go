package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Egor213/LogiStat/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
app:
  name: logistat
  version: 1.0.0
postgres:
  max_pool_size: 4
http:
  port: "3001"
grpc:
  port: "50051"
prometheus:
  port: "9000"
storage:
  driver: local
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PG_URL", "postgres://u:p@localhost:5432/logs")

	cfg, err := config.Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "logistat", cfg.App.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 4, cfg.PG.MaxPoolSize)
	assert.Equal(t, "3001", cfg.HTTP.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, config.StorageDriverLocal, cfg.Storage.Driver)
	assert.Equal(t, 60*time.Second, cfg.Storage.PresignTTL)
	assert.Equal(t, "results/", cfg.Storage.KeyPrefix)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxSize)
	assert.Equal(t, []string{".log", ".txt"}, cfg.Upload.AllowedExtensions)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, 500*time.Millisecond, cfg.Watcher.Settle)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PG_URL", "postgres://u:p@localhost:5432/logs")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("UPLOAD_MAX_SIZE", "1024")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := config.Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, int64(1024), cfg.Upload.MaxSize)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("PG_URL", "")
	require.NoError(t, os.Unsetenv("PG_URL"))

	_, err := config.Load(writeConfig(t, testConfig))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
