package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/fortress/internal/flagx"
	"github.com/dmitrijs2005/fortress/internal/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fortress.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Empty(t, cmp.Diff(&Config{
		StorageDriver: "sqlite",
		DatabaseDSN:   "fortress.db",
		ExportDir:     "downloads",
		MaxFileSize:   5 << 20,
		QuotaBytes:    5 << 20,
		KDFIterations: 100000,
		LogLevel:      "warn",
		LogFormat:     "text",
	}, c))
	require.NoError(t, c.Validate())
}

func TestLoad_NoSources(t *testing.T) {
	t.Setenv(flagx.ConfigEnv, "")
	assert.Empty(t, cmp.Diff(defaults(), Load(nil)))
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectPanic bool
		mutate      func(c *Config)
	}{
		{
			name: "all flags",
			args: []string{"-s", "pgx", "-d", "postgres://u@h/db", "-o", "/tmp/out", "-m", "2", "-q", "10", "-k", "200000", "-l", "debug", "-f", "json"},
			mutate: func(c *Config) {
				c.StorageDriver = "pgx"
				c.DatabaseDSN = "postgres://u@h/db"
				c.ExportDir = "/tmp/out"
				c.MaxFileSize = 2 << 20
				c.QuotaBytes = 10 << 20
				c.KDFIterations = 200000
				c.LogLevel = "debug"
				c.LogFormat = "json"
			},
		},
		{
			name:   "unknown flags are ignored",
			args:   []string{"-x", "1", "-s", "memory", "-c", "cfg.json"},
			mutate: func(c *Config) { c.StorageDriver = "memory" },
		},
		{name: "bad iteration count", args: []string{"-k", "many"}, expectPanic: true},
		{name: "bad quota", args: []string{"-q", "1.5"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(c, tt.args) })
				return
			}

			want := defaults()
			tt.mutate(want)
			require.NotPanics(t, func() { parseFlags(c, tt.args) })
			assert.Empty(t, cmp.Diff(want, c))
		})
	}
}

func TestParseFlags_SizesUntouchedWhenAbsent(t *testing.T) {
	c := defaults()
	c.MaxFileSize = 1234567
	parseFlags(c, []string{"-l", "warn"})
	assert.Equal(t, int64(1234567), c.MaxFileSize)
}

func TestParseJson(t *testing.T) {
	t.Setenv(flagx.ConfigEnv, "")
	path := writeTempJSON(t, map[string]any{
		"storage_driver": "memory",
		"export_dir":     "exports",
		"quota_bytes":    1000,
	})

	c := defaults()
	parseJson(c, []string{"-c", path})

	want := defaults()
	want.StorageDriver = "memory"
	want.ExportDir = "exports"
	want.QuotaBytes = 1000
	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseJson_FromEnv(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"log_level": "error"})
	t.Setenv(flagx.ConfigEnv, path)

	c := defaults()
	parseJson(c, nil)
	assert.Equal(t, "error", c.LogLevel)
}

func TestParseJson_Errors(t *testing.T) {
	t.Setenv(flagx.ConfigEnv, "")

	require.Panics(t, func() {
		parseJson(defaults(), []string{"-config", filepath.Join(t.TempDir(), "missing.json")})
	})

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	require.Panics(t, func() { parseJson(defaults(), []string{"-c", bad}) })
}

func TestLoad_FlagsOverrideJSON(t *testing.T) {
	t.Setenv(flagx.ConfigEnv, "")
	path := writeTempJSON(t, map[string]any{"storage_driver": "memory", "kdf_iterations": 150000})

	c := Load([]string{"-c", path, "-k", "300000"})
	assert.Equal(t, "memory", c.StorageDriver)
	assert.Equal(t, 300000, c.KDFIterations)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.StorageDriver = "mysql" }},
		{"missing dsn", func(c *Config) { c.DatabaseDSN = "" }},
		{"missing export dir", func(c *Config) { c.ExportDir = "" }},
		{"zero file size", func(c *Config) { c.MaxFileSize = 0 }},
		{"negative quota", func(c *Config) { c.QuotaBytes = -1 }},
		{"weak kdf", func(c *Config) { c.KDFIterations = 99999 }},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			require.Error(t, c.Validate())
		})
	}

	c := defaults()
	c.StorageDriver = "memory"
	c.DatabaseDSN = ""
	require.NoError(t, c.Validate(), "memory driver needs no dsn")
}

func TestLoggingOptions(t *testing.T) {
	t.Setenv(flagx.ConfigEnv, "")
	path := writeTempJSON(t, map[string]any{"log_format": "json", "log_level": "info"})

	c := Load([]string{"-c", path})
	require.NoError(t, c.Validate())
	assert.Equal(t, logging.Options{Level: "info", JSON: true}, c.LoggingOptions())

	c = Load([]string{"-c", path, "-f", "text"})
	assert.False(t, c.LoggingOptions().JSON)
}

func TestLoadConfig_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTempJSON(t, map[string]any{"export_dir": "from-dotenv"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(flagx.ConfigEnv+"="+cfgPath+"\n"), 0o600))

	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })

	origArgs := os.Args
	os.Args = []string{"fortress"}
	t.Cleanup(func() { os.Args = origArgs })

	// godotenv never overrides variables that are already set.
	t.Setenv(flagx.ConfigEnv, "")
	require.NoError(t, os.Unsetenv(flagx.ConfigEnv))

	c := LoadConfig()
	assert.Equal(t, "from-dotenv", c.ExportDir)
}
