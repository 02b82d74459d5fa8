package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. FORMGATE_ADDR.
const EnvPrefix = "FORMGATE"

const (
	KeyConfig    = "config"
	KeyAddr      = "addr"
	KeyBasePath  = "base-path"
	KeyForm      = "form"
	KeyFormsDir  = "forms-dir"
	KeyJSON      = "json"
	KeyNoColor   = "no-color"
	KeyMaxBytes  = "max-bytes"
	KeyAllowHTTP = "allow-http"
)

const (
	DefaultAddr     = "127.0.0.1:8080"
	DefaultBasePath = "/v1"
	DefaultForm     = "signup"
	DefaultMaxBytes = 8 << 20
)

// Config is the resolved CLI and server configuration.
type Config struct {
	Addr      string `mapstructure:"addr"`
	BasePath  string `mapstructure:"base-path"`
	Form      string `mapstructure:"form"`
	FormsDir  string `mapstructure:"forms-dir"`
	JSON      bool   `mapstructure:"json"`
	NoColor   bool   `mapstructure:"no-color"`
	MaxBytes  int64  `mapstructure:"max-bytes"`
	AllowHTTP bool   `mapstructure:"allow-http"`
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAddr, DefaultAddr)
	v.SetDefault(KeyBasePath, DefaultBasePath)
	v.SetDefault(KeyForm, DefaultForm)
	v.SetDefault(KeyFormsDir, "")
	v.SetDefault(KeyJSON, false)
	v.SetDefault(KeyNoColor, false)
	v.SetDefault(KeyMaxBytes, DefaultMaxBytes)
	v.SetDefault(KeyAllowHTTP, false)
	return v
}

// Load reads the optional config file named by the "config" key, then
// decodes and validates the merged settings.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		return Config{}, errors.New("config: viper instance is required")
	}
	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.BasePath = normalizeBasePath(cfg.BasePath)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the resolved values.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("config: addr is required")
	}
	if strings.TrimSpace(c.Form) == "" {
		return errors.New("config: form is required")
	}
	if c.MaxBytes <= 0 {
		return fmt.Errorf("config: max-bytes must be positive, got %d", c.MaxBytes)
	}
	return nil
}

func normalizeBasePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == "/" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimSuffix(path, "/")
}
