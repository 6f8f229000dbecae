// Package config resolves runtime settings from defaults, an optional
// recipebox.yaml, RECIPEBOX_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/storage"
)

// Keys understood by the loader.
const (
	KeyBackend      = "backend"
	KeyDataPath     = "data_path"
	KeyLocale       = "locale"
	KeyLogLevel     = "log_level"
	KeyLogFile      = "log_file"
	KeyShareBaseURL = "share_base_url"
	KeyDefaultSort  = "default_sort"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "RECIPEBOX"

// DataDir is where state and logs live unless configured otherwise.
const DataDir = ".recipebox"

// Config holds resolved settings.
type Config struct {
	Backend      string `mapstructure:"backend"`
	DataPath     string `mapstructure:"data_path"`
	Locale       string `mapstructure:"locale"`
	LogLevel     string `mapstructure:"log_level"`
	LogFile      string `mapstructure:"log_file"`
	ShareBaseURL string `mapstructure:"share_base_url"`
	DefaultSort  string `mapstructure:"default_sort"`
}

// New returns a viper instance with defaults and environment binding set.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyBackend, storage.BackendFile)
	v.SetDefault(KeyDataPath, "")
	v.SetDefault(KeyLocale, "en")
	v.SetDefault(KeyLogLevel, "normal")
	v.SetDefault(KeyLogFile, filepath.Join(DataDir, "recipebox.log"))
	v.SetDefault(KeyShareBaseURL, "http://localhost:3000")
	v.SetDefault(KeyDefaultSort, string(domain.SortByName))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (configFile, or recipebox.yaml in the working
// directory or ~/.config/recipebox) and returns the validated config. A
// missing default config file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("recipebox")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "recipebox"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.DataPath == "" {
		cfg.DataPath = DefaultDataPath(cfg.Backend)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultDataPath returns the data location used when none is configured.
func DefaultDataPath(backend string) string {
	switch backend {
	case storage.BackendSQLite:
		return filepath.Join(DataDir, "recipes.db")
	case storage.BackendMemory:
		return ""
	default:
		return filepath.Join(DataDir, "recipes.json")
	}
}

// Validate checks that every setting has a usable value.
func (c *Config) Validate() error {
	if !slices.Contains(storage.Backends, c.Backend) {
		return fmt.Errorf("invalid %s %q: must be one of %s", KeyBackend, c.Backend, strings.Join(storage.Backends, ", "))
	}
	if c.Backend != storage.BackendMemory && c.DataPath == "" {
		return fmt.Errorf("%s is required for the %s backend", KeyDataPath, c.Backend)
	}
	if _, ok := domain.ParseSortKey(c.DefaultSort); !ok {
		return fmt.Errorf("invalid %s %q", KeyDefaultSort, c.DefaultSort)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}
	return nil
}

// SortKey returns the default sort key. Call after Validate.
func (c *Config) SortKey() domain.SortKey {
	k, _ := domain.ParseSortKey(c.DefaultSort)
	return k
}

// Level returns the parsed log level. Call after Validate.
func (c *Config) Level() logger.Level {
	l, _ := logger.ParseLevel(c.LogLevel)
	return l
}

// StorageOptions returns the adapter options for storage.Open.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{Backend: c.Backend, Path: c.DataPath}
}
