package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, "text", c.Log.Format)
	assert.Equal(t, BackendBolt, c.Storage.Backend)
	assert.Equal(t, time.Duration(0), c.HTTP.Timeout)
	assert.Equal(t, SecretsAuto, c.Secrets.Mode)
	assert.NoError(t, c.Validate())
}

func TestLoad_FromYAMLFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
log:
  level: debug
  format: json
storage:
  backend: sqlite
  path: /tmp/odoocli-state.db
http:
  timeout: 15s
secrets:
  mode: aes
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "json", c.Log.Format)
	assert.Equal(t, BackendSQLite, c.Storage.Backend)
	assert.Equal(t, "/tmp/odoocli-state.db", c.Storage.Path)
	assert.Equal(t, 15*time.Second, c.HTTP.Timeout)
	assert.Equal(t, SecretsAES, c.Secrets.Mode)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", "log:\n  level: info\n")
	t.Setenv("ODOOCLI_LOG_LEVEL", "error")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "error", c.Log.Level)
	assert.Equal(t, "text", c.Log.Format, "unset keys keep defaults")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "config.yaml", "storage:\n  backend: redis\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "sqlite", mutate: func(c *Config) { c.Storage.Backend = BackendSQLite }},
		{name: "plain secrets", mutate: func(c *Config) { c.Secrets.Mode = SecretsPlain }},
		{name: "bad secrets", mutate: func(c *Config) { c.Secrets.Mode = "vault" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.HTTP.Timeout = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)

			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "config.yaml")

	want := Default()
	want.Log.Level = "info"
	want.Storage.Backend = BackendSQLite
	want.HTTP.Timeout = 30 * time.Second

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
