package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"BACKEND", "DATA_PATH", "LOCALE", "LOG_LEVEL", "LOG_FILE", "SHARE_BASE_URL", "DEFAULT_SORT"} {
		t.Setenv(EnvPrefix+"_"+k, "")
		require.NoError(t, os.Unsetenv(EnvPrefix+"_"+k))
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Backend)
	assert.Equal(t, filepath.Join(DataDir, "recipes.json"), cfg.DataPath)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, domain.SortByName, cfg.SortKey())
	assert.Equal(t, logger.LevelNormal, cfg.Level())
}

func TestLoadFileAndEnv(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "recipebox.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: sqlite\nlocale: fr\ndefault_sort: favorite\n"), 0o600))

	t.Setenv("RECIPEBOX_LOCALE", "de")
	t.Setenv("RECIPEBOX_LOG_LEVEL", "debug")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, filepath.Join(DataDir, "recipes.db"), cfg.DataPath)
	assert.Equal(t, "de", cfg.Locale, "env overrides file")
	assert.Equal(t, domain.SortByFavorite, cfg.SortKey())
	assert.Equal(t, logger.LevelVerbose, cfg.Level())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{Backend: "file", DataPath: "r.json", DefaultSort: "name", LogLevel: "normal"}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"memory needs no path", func(c *Config) { c.Backend = "memory"; c.DataPath = "" }, false},
		{"unknown backend", func(c *Config) { c.Backend = "postgres" }, true},
		{"file without path", func(c *Config) { c.DataPath = "" }, true},
		{"bad sort", func(c *Config) { c.DefaultSort = "rating" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
