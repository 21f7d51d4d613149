package config

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adb-reso/adb-reso-go/internal/dpi"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, float64(20), cfg.Server.RateLimitRPS)
	assert.Equal(t, 40, cfg.Server.RateLimitBurst)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "exponential", cfg.Database.RetryStrategy)
	assert.Equal(t, 5, cfg.Database.RetryAttempts)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "toggleState", cfg.Storage.SettingsKey)
	assert.Equal(t, time.Hour, cfg.Session.TTL())
	assert.Equal(t, time.Minute, cfg.Session.JanitorInterval())

	table, err := cfg.DPI.Table()
	require.NoError(t, err)
	assert.Equal(t, dpi.DefaultTable, table)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
server:
  port: 9090
log:
  level: debug
  format: json
session:
  ttl_minutes: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5*time.Minute, cfg.Session.TTL())
	assert.Equal(t, "adb_reso", cfg.Metrics.Namespace)
}

func TestLoad_CustomTiers(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
dpi:
  tiers:
    - {upper: 300, tier: low, label: Low, color: "#f59e0b"}
    - {upper: 420, tier: optimal, label: Optimal, color: "#10b981"}
    - {upper: 100000, tier: high, label: High, color: "#8b5cf6"}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	table, err := cfg.DPI.Table()
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, "Optimal", table.Classify(400).Label)
}

func TestLoad_InvalidTiers(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
dpi:
  tiers:
    - {upper: 420, tier: optimal, label: Optimal}
    - {upper: 300, tier: low, label: Low}
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RetryStrategy(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
database:
  retry_strategy: linear
  retry_attempts: 3
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "linear", cfg.Database.RetryStrategy)
	assert.Equal(t, 3, cfg.Database.RetryAttempts)

	path = writeConfig(t, t.TempDir(), `
database:
  retry_strategy: jitter
`)
	_, err = Load(path)
	assert.ErrorContains(t, err, "database.retry_strategy")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("DB_TYPE", "mysql")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestInitLogger(t *testing.T) {
	l := InitLogger(&LogConfig{Level: "warn", Format: "json"})
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	l = InitLogger(&LogConfig{Level: "nonsense"})
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}

func TestWatcher_ReloadsLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "log:\n  level: info\n")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	w, err := NewWatcher(path, logger)
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond

	reloaded := make(chan *Config, 1)
	w.OnReload(func(c *Config) {
		select {
		case reloaded <- c:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0644))

	select {
	case c := <-reloaded:
		assert.Equal(t, "debug", c.Log.Level)
	case <-time.After(3 * time.Second):
		t.Fatal("config was not reloaded")
	}
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}
