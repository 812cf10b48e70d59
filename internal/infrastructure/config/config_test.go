package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.yaml"), []byte(content), 0o644))
	t.Chdir(dir)
}

func TestLoad(t *testing.T) {
	t.Run("values from the config file override the defaults", func(t *testing.T) {
		viper.Reset()
		writeConfigFile(t, `
database:
  database: operator_set_db
logger:
  output_path: /var/log/app.log
`)

		cfg, err := Load("development")
		require.NoError(t, err)

		assert.Equal(t, "operator_set_db", cfg.Database.Database)
		assert.Equal(t, "/var/log/app.log", cfg.Logger.OutputPath)
	})

	t.Run("shipped config file binds every section", func(t *testing.T) {
		viper.Reset()
		data, err := os.ReadFile(filepath.Join(shippedConfigDir(t), "config.yaml"))
		require.NoError(t, err)
		writeConfigFile(t, string(data))

		cfg, err := Load("development")
		require.NoError(t, err)

		assert.Equal(t, "dcfagents_dev", cfg.Database.Database)
		assert.Equal(t, "stdout", cfg.Logger.OutputPath)
		assert.Equal(t, 12, cfg.Auth.Password.BcryptCost)
		assert.Equal(t, 10, cfg.Redis.CacheTTLMinutes)
		assert.True(t, cfg.Seed.Enabled)
		// allowed_origins has no default, so it only appears if the file
		// actually bound.
		assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	})

	t.Run("missing config file falls back to defaults", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "dcfagents_dev", cfg.Database.Database)
		assert.Equal(t, "0.0.0.0:8080", cfg.Server.GetAddr())
	})

	t.Run("env parameter overrides server mode", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())

		cfg, err := Load("release")
		require.NoError(t, err)

		assert.Equal(t, "release", cfg.Server.Mode)
	})
}

// shippedConfigDir locates the repository's configs directory from the
// package directory so the test covers the file operators actually edit.
func shippedConfigDir(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Join(wd, "..", "..", "..", "configs")
}
