// Package config provides configuration types, defaults and loading for
// library-catalog.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"library-catalog/library"
)

// DefaultFile is read from the working directory when no --config is given.
const DefaultFile = "library-catalog.yaml"

// EnvPrefix prefixes environment overrides, e.g. LIBRARY_CSV_PATH.
const EnvPrefix = "LIBRARY"

// UserConfig is one staff login.
type UserConfig struct {
	Password string `mapstructure:"password"`
	Role     string `mapstructure:"role"`
}

// Config holds all configuration options for library-catalog.
type Config struct {
	// Users maps a lower-case username to its credentials.
	Users map[string]UserConfig `mapstructure:"users"`

	// CSVPath is the default target of "Save Books to CSV" and the export command.
	CSVPath string `mapstructure:"csv_path"`

	// SeedFile optionally names a catalog CSV loaded at start-up.
	SeedFile string `mapstructure:"seed_file"`

	LogLevel string `mapstructure:"log_level"`

	// StrictKeys rejects duplicate ISBNs and patron IDs.
	StrictKeys bool `mapstructure:"strict_keys"`

	// ReportFormat is one of text, json, yaml or table.
	ReportFormat string `mapstructure:"report_format"`
}

// ReportFormats lists the accepted report formats.
var ReportFormats = []string{"text", "json", "yaml", "table"}

// DefaultUsers returns the built-in staff logins.
func DefaultUsers() map[string]UserConfig {
	return map[string]UserConfig{
		"librarian":     {Password: "libpass", Role: "Librarian"},
		"administrator": {Password: "adminpass", Role: "Administrator"},
	}
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Users:        DefaultUsers(),
		CSVPath:      "books.csv",
		LogLevel:     "warn",
		StrictKeys:   true,
		ReportFormat: "text",
	}
}

// SetDefaults registers Default() with v so env vars and flags can override
// individual keys. Users are filled in after decoding instead, so a config
// file that lists users replaces the built-in logins rather than merging.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("csv_path", d.CSVPath)
	v.SetDefault("seed_file", d.SeedFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("strict_keys", d.StrictKeys)
	v.SetDefault("report_format", d.ReportFormat)
}

// Load reads configuration from path (or DefaultFile when present), the
// environment and any flags already bound to v.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case path != "":
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	default:
		if _, err := os.Stat(DefaultFile); err == nil {
			v.SetConfigFile(DefaultFile)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", DefaultFile, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Users) == 0 {
		cfg.Users = DefaultUsers()
	}
	cfg.Users = normalizeUsers(cfg.Users)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func normalizeUsers(users map[string]UserConfig) map[string]UserConfig {
	out := make(map[string]UserConfig, len(users))
	for name, u := range users {
		out[strings.ToLower(strings.TrimSpace(name))] = u
	}
	return out
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	var errs []error
	if len(c.Users) == 0 {
		errs = append(errs, errors.New("users: at least one user is required"))
	}
	for name, u := range c.Users {
		if name == "" {
			errs = append(errs, errors.New("users: empty username"))
		}
		if u.Password == "" {
			errs = append(errs, fmt.Errorf("users.%s: password is required", name))
		}
		if _, err := library.ParseRole(u.Role); err != nil {
			errs = append(errs, fmt.Errorf("users.%s: %w", name, err))
		}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if !validFormat(c.ReportFormat) {
		errs = append(errs, fmt.Errorf("report_format: %q must be one of %s", c.ReportFormat, strings.Join(ReportFormats, ", ")))
	}
	return errors.Join(errs...)
}

func validFormat(f string) bool {
	for _, ok := range ReportFormats {
		if f == ok {
			return true
		}
	}
	return false
}

// ParseLogLevel maps debug, info, warn or error to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
