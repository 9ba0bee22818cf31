package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 5, cfg.Catalog.LowStockThreshold)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  port: "9000"
store:
  driver: memory
catalog:
  low_stock_threshold: 3
`)
	require.NoError(t, os.WriteFile(file, content, 0o644))

	t.Setenv("SERVER_PORT", "9100")

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Catalog.LowStockThreshold)
	// 文件中未出现的字段保留默认值
	assert.Equal(t, "mongodb://localhost:27017", cfg.Store.Mongo.URI)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "etcd")

	_, err := Load("")
	assert.Error(t, err)
}
