// Package config loads runtime settings from the environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key, e.g. TASKLIST_EMIT_DELAY.
const EnvPrefix = "TASKLIST"

// Config holds the settings read at startup.
type Config struct {
	Port       string        `mapstructure:"port"`
	EmitDelay  time.Duration `mapstructure:"emit_delay"`
	AuthToken  string        `mapstructure:"auth_token"`
	FixtureDSN string        `mapstructure:"fixture_dsn"`
	LogLevel   string        `mapstructure:"log_level"`
	LogFormat  string        `mapstructure:"log_format"`
}

// Load reads defaults, then the config file at configPath if one is given,
// then the environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("emit_delay", "500ms")
	v.SetDefault("auth_token", "")
	v.SetDefault("fixture_dsn", ":memory:")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// PORT is honoured unprefixed as well, for hosting platforms that set it.
	if err := v.BindEnv("port", EnvPrefix+"_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind port: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that have no usable fallback.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("port is required")
	}
	if c.EmitDelay <= 0 {
		return errors.New("emit_delay must be positive")
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return errors.New("log_format must be 'console' or 'json'")
	}
	return nil
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}
