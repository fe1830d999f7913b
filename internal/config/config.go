// Package config loads odoocli runtime settings from defaults, an optional
// config file and ODOOCLI_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inovacc/odoocli/internal/application"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

// Secret sealing modes.
const (
	SecretsAuto    = "auto"
	SecretsKeyring = "keyring"
	SecretsAES     = "aes"
	SecretsPlain   = "plain"
)

// Config holds application configuration.
type Config struct {
	Log     LogConfig     `json:"log"`
	Storage StorageConfig `json:"storage"`
	HTTP    HTTPConfig    `json:"http"`
	Secrets SecretsConfig `json:"secrets"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// StorageConfig selects where auth and profile state is persisted.
type StorageConfig struct {
	Backend string `json:"backend"`
	Path    string `json:"path"`
}

// HTTPConfig tunes the transport used by the gateway. A zero Timeout means no
// client-side timeout; callers may still bound calls with a context deadline.
type HTTPConfig struct {
	Timeout time.Duration `json:"timeout"`
}

// SecretsConfig selects how the API key is sealed at rest.
type SecretsConfig struct {
	Mode string `json:"mode"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:     LogConfig{Level: "warn", Format: "text"},
		Storage: StorageConfig{Backend: BackendBolt},
		HTTP:    HTTPConfig{Timeout: 0},
		Secrets: SecretsConfig{Mode: SecretsAuto},
	}
}

func newViper() *viper.Viper {
	v := viper.New()

	def := Default()
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("storage.backend", def.Storage.Backend)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("http.timeout", def.HTTP.Timeout)
	v.SetDefault("secrets.mode", def.Secrets.Mode)

	v.SetEnvPrefix(application.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configuration. When path is empty the file "config" (yaml, toml or
// json) is looked up in the application directory; a missing file is not an
// error. An explicit path that cannot be read is.
func Load(path string) (Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		if dir, err := application.GetApplicationDirectory(); err == nil {
			v.AddConfigPath(dir)
		}

		v.SetConfigName("config")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendBolt, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q (want %s or %s)", c.Storage.Backend, BackendBolt, BackendSQLite)
	}

	switch c.Secrets.Mode {
	case SecretsAuto, SecretsKeyring, SecretsAES, SecretsPlain:
	default:
		return fmt.Errorf("unknown secrets mode %q", c.Secrets.Mode)
	}

	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http timeout must not be negative")
	}

	return nil
}

// DefaultFile returns config.yaml in the application directory.
func DefaultFile() (string, error) {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.yaml"), nil
}

// Save writes cfg as YAML to path, or to DefaultFile when path is empty.
func Save(path string, cfg Config) error {
	if path == "" {
		p, err := DefaultFile()
		if err != nil {
			return err
		}

		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("http.timeout", cfg.HTTP.Timeout.String())
	v.Set("secrets.mode", cfg.Secrets.Mode)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
