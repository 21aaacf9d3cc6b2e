package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "books.csv", cfg.CSVPath)
	assert.Equal(t, "text", cfg.ReportFormat)
	assert.True(t, cfg.StrictKeys)
	assert.Equal(t, "libpass", cfg.Users["librarian"].Password)
	assert.Equal(t, "Administrator", cfg.Users["administrator"].Role)
}

func TestLoadFromYAML(t *testing.T) {
	path := writeConfig(t, `
csv_path: exports/catalog.csv
seed_file: seed.csv
log_level: debug
strict_keys: false
report_format: table
users:
  Head:
    password: s3cret
    role: administrator
`)
	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "exports/catalog.csv", cfg.CSVPath)
	assert.Equal(t, "seed.csv", cfg.SeedFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.StrictKeys)
	assert.Equal(t, "table", cfg.ReportFormat)
	require.Contains(t, cfg.Users, "head")
	assert.Equal(t, "s3cret", cfg.Users["head"].Password)
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LIBRARY_CSV_PATH", "env.csv")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "env.csv", cfg.CSVPath)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "no users", mutate: func(c *Config) { c.Users = nil }, want: "at least one user"},
		{name: "missing password", mutate: func(c *Config) { c.Users["x"] = UserConfig{Role: "Librarian"} }, want: "users.x: password"},
		{name: "bad role", mutate: func(c *Config) { c.Users["x"] = UserConfig{Password: "p", Role: "janitor"} }, want: "unknown role"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, want: "log_level"},
		{name: "bad format", mutate: func(c *Config) { c.ReportFormat = "pdf" }, want: "report_format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	require.NoError(t, Default().Validate())
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir for Go < 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
