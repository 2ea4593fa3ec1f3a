// Package config loads EventPilot settings from defaults, a YAML file,
// EVENTPILOT_* environment variables and command-line flags, in increasing
// order of priority.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "EVENTPILOT"
	dirName   = ".eventpilot"

	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Keys understood by the loader.
const (
	KeyStoreBackend  = "store.backend"
	KeyStorePath     = "store.path"
	KeyStoreCacheTTL = "store.cache_ttl"
	KeySessionTTL    = "session.ttl"
	KeyLogLevel      = "log.level"
	KeyLogFile       = "log.file"
	KeyListLimit     = "projects.list_limit"
	KeyTimezone      = "timezone"
)

// Duration renders as "5m0s" in YAML instead of nanoseconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

type StoreConfig struct {
	Backend  string   `yaml:"backend"`
	Path     string   `yaml:"path"`
	CacheTTL Duration `yaml:"cache_ttl"`
}

type SessionConfig struct {
	TTL Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type ProjectsConfig struct {
	ListLimit int `yaml:"list_limit"`
}

type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Session  SessionConfig  `yaml:"session"`
	Log      LogConfig      `yaml:"log"`
	Projects ProjectsConfig `yaml:"projects"`
	Timezone string         `yaml:"timezone"`
}

// Dir is the per-user configuration and data directory.
func Dir(home string) string {
	return filepath.Join(home, dirName)
}

// DefaultPath is where the config file is looked up.
func DefaultPath(home string) string {
	return filepath.Join(Dir(home), "config.yaml")
}

// Defaults returns the built-in configuration.
func Defaults(home string) Config {
	return Config{
		Store: StoreConfig{
			Backend:  BackendSQLite,
			Path:     filepath.Join(Dir(home), "eventpilot.db"),
			CacheTTL: Duration{5 * time.Minute},
		},
		Session:  SessionConfig{TTL: Duration{2 * time.Hour}},
		Log:      LogConfig{Level: "warn"},
		Projects: ProjectsConfig{ListLimit: 10},
		Timezone: "Local",
	}
}

// New returns a viper instance primed with defaults and environment
// binding. EVENTPILOT_STORE_PATH maps to store.path and so on.
func New(home string) *viper.Viper {
	v := viper.New()
	d := Defaults(home)
	v.SetDefault(KeyStoreBackend, d.Store.Backend)
	v.SetDefault(KeyStorePath, "")
	v.SetDefault(KeyStoreCacheTTL, d.Store.CacheTTL.Duration)
	v.SetDefault(KeySessionTTL, d.Session.TTL.Duration)
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogFile, d.Log.File)
	v.SetDefault(KeyListLimit, d.Projects.ListLimit)
	v.SetDefault(KeyTimezone, d.Timezone)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configFile (or the default location when empty) into v and
// returns the resolved configuration. A missing default file is not an
// error; a missing explicit file is.
func Load(v *viper.Viper, configFile, home string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(Dir(home))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{
		Store: StoreConfig{
			Backend:  strings.ToLower(strings.TrimSpace(v.GetString(KeyStoreBackend))),
			Path:     v.GetString(KeyStorePath),
			CacheTTL: Duration{v.GetDuration(KeyStoreCacheTTL)},
		},
		Session:  SessionConfig{TTL: Duration{v.GetDuration(KeySessionTTL)}},
		Log:      LogConfig{Level: v.GetString(KeyLogLevel), File: v.GetString(KeyLogFile)},
		Projects: ProjectsConfig{ListLimit: v.GetInt(KeyListLimit)},
		Timezone: v.GetString(KeyTimezone),
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = defaultStorePath(cfg.Store.Backend, home)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultStorePath(backend, home string) string {
	if backend == BackendFile {
		return filepath.Join(Dir(home), "projects")
	}
	return filepath.Join(Dir(home), "eventpilot.db")
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendSQLite, BackendFile:
	default:
		return fmt.Errorf("%s: unknown backend %q (want %s or %s)", KeyStoreBackend, c.Store.Backend, BackendSQLite, BackendFile)
	}
	if c.Store.CacheTTL.Duration < 0 {
		return fmt.Errorf("%s: must not be negative", KeyStoreCacheTTL)
	}
	if c.Session.TTL.Duration < 0 {
		return fmt.Errorf("%s: must not be negative", KeySessionTTL)
	}
	if c.Projects.ListLimit <= 0 {
		return fmt.Errorf("%s: must be positive, got %d", KeyListLimit, c.Projects.ListLimit)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	return lvl, nil
}

// Location resolves the time zone used to interpret dates in user text.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyTimezone, err)
	}
	return loc, nil
}
