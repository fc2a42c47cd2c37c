package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/reoring/catalogpatch/config"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 15*time.Second, cfg.GetReadTimeout())
	assert.Equal(t, 10*time.Second, cfg.GetShutdownTimeout())
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoad_FileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogpatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  address: ":9090"
  read_timeout: 2s
database:
  driver: memory
api:
  default_version: "2"
  language: ja
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, 2*time.Second, cfg.GetReadTimeout())
	assert.Equal(t, 15*time.Second, cfg.GetWriteTimeout())
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, "ja", cfg.API.Language)
	assert.Equal(t, []string{"1", "2"}, cfg.API.Versions)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CATALOG_ADDR", "127.0.0.1:1")
	t.Setenv("CATALOG_DB_DSN", "/tmp/x.db")
	t.Setenv("CATALOG_LOG_LEVEL", "debug")
	t.Setenv("CATALOG_EVENT_SINK", "outbox")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:1", cfg.Server.Address)
	assert.Equal(t, "/tmp/x.db", cfg.Database.DSN)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "outbox", cfg.Events.Sink)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o644))
	_, err := config.Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Database.Driver = "postgres"
	cfg.Logging.Level = "loud"
	cfg.Events.Sink = "kafka"
	cfg.Server.ReadTimeout = "soon"
	cfg.API.DefaultVersion = "3"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 5)
}

func TestValidate_OutboxNeedsSQLite(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Database.Driver = "memory"
	cfg.Events.Sink = "outbox"
	assert.ErrorContains(t, cfg.Validate(), "requires the sqlite driver")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "c.yaml")
	cfg := config.DefaultConfig()
	cfg.Server.Development = true
	require.NoError(t, cfg.Save(path))
	got, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, got.Server.Development)
}
