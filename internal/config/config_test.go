package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/wayfinder/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	v := viper.New()
	require.NoError(t, config.Init(v, ""))

	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wayfinder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
flow:
  path: ./flows/sales.yaml
  source: file
server:
  addr: ":9090"
`), 0o644))

	t.Setenv("WAYFINDER_SERVER_ADDR", ":7070")
	t.Setenv("WAYFINDER_QUERY_MAX_SIZE", "64")

	v := viper.New()
	require.NoError(t, config.Init(v, path))

	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "./flows/sales.yaml", cfg.Flow.Path)
	assert.Equal(t, config.SourceFile, cfg.Flow.Source)
	assert.Equal(t, ":7070", cfg.Server.Addr, "environment wins over the file")
	assert.Equal(t, 64, cfg.Query.MaxSize)
	assert.Equal(t, "wayfinder:", cfg.Redis.Prefix)
}

func TestInit_MissingExplicitFile(t *testing.T) {
	v := viper.New()
	err := config.Init(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.Flow.Source = "ftp"
	cfg.Log.Format = "xml"
	cfg.Flow.Item = -1
	cfg.Query.MaxSize = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flow.source")
	assert.Contains(t, err.Error(), "log.format")
	assert.Contains(t, err.Error(), "flow.item")
	assert.Contains(t, err.Error(), "query.max_size")
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "wayfinder"), config.Dir())
}
