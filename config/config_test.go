package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GO_ENV", "test")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "shop_pos", cfg.MongoDB_DBName)
	assert.Equal(t, 100, cfg.StoreBatchSize)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout())
	assert.Equal(t, 10*time.Second, cfg.OperationTimeout())
}

func TestNewConfig_EnvFileFromParentDir(t *testing.T) {
	root := t.TempDir()
	envDir := filepath.Join(root, "config", "env")
	require.NoError(t, os.MkdirAll(envDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(envDir, "staging.env"),
		[]byte("MONGODB_DBNAME=shop_staging\nSTORE_BATCH_SIZE=25\n"), 0644))

	work := filepath.Join(root, "cmd", "shop")
	require.NoError(t, os.MkdirAll(work, 0755))
	chdir(t, work)
	t.Setenv("GO_ENV", "staging")
	// godotenv never overrides variables already present; register cleanup for the loaded ones
	t.Setenv("MONGODB_DBNAME", "")
	os.Unsetenv("MONGODB_DBNAME")
	t.Setenv("STORE_BATCH_SIZE", "")
	os.Unsetenv("STORE_BATCH_SIZE")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "shop_staging", cfg.MongoDB_DBName)
	assert.Equal(t, 25, cfg.StoreBatchSize)
}

func TestNewConfig_ProcessEnvWins(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MONGODB_DATA_PATH", "/var/lib/shop/json")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/shop/json", cfg.DataJSONPath)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
