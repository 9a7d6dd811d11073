package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Connectivity.Timeout)
	assert.Equal(t, 128, cfg.Catalog.CacheSize)
	assert.True(t, cfg.Catalog.SeedOnStart)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
server:
  port: "9090"
connectivity:
  timeout: 5s
catalog:
  cache_size: 16
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOGGING_LEVEL=debug\n"), 0o600))
	t.Setenv("DATABASE_HOST", "mysql.internal")
	t.Cleanup(func() { _ = os.Unsetenv("LOGGING_LEVEL") })

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Connectivity.Timeout)
	assert.Equal(t, 16, cfg.Catalog.CacheSize)
	assert.Equal(t, "mysql.internal", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Connectivity: ConnectivityConfig{Timeout: time.Second},
		Catalog:      CatalogConfig{CacheSize: 1},
	}
	require.NoError(t, cfg.Validate())

	cfg.Security.EnableAuth = true
	assert.Error(t, cfg.Validate())

	cfg.Security.JWTSecret = "secret"
	cfg.Catalog.CacheSize = 0
	assert.Error(t, cfg.Validate())
}

func TestDatabaseDSN(t *testing.T) {
	dsn := DatabaseConfig{Host: "db", Port: "3306", Username: "u", Password: "p", Database: "dataflow"}.DSN()
	assert.Contains(t, dsn, "u:p@tcp(db:3306)/dataflow")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, GormLogLevel("debug"))
	assert.Equal(t, logger.Silent, GormLogLevel("error"))
	assert.Equal(t, logger.Warn, GormLogLevel("bogus"))
}
