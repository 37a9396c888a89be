// Package config loads runtime settings from an optional YAML file, a .env
// file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API      APIConfig      `yaml:"api"`
	Browse   BrowseConfig   `yaml:"browse"`
	Redis    RedisConfig    `yaml:"redis"`
	Tracking TrackingConfig `yaml:"tracking"`
	Logging  LoggingConfig  `yaml:"logging"`
	// ListenAddress is used by the stub API server.
	ListenAddress string `yaml:"listen_address"`
}

type APIConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

type BrowseConfig struct {
	PageSize   int `yaml:"page_size"`
	DebounceMs int `yaml:"debounce_ms"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type TrackingConfig struct {
	RabbitURL string `yaml:"rabbit_url"`
	Country   string `yaml:"country"`
}

type LoggingConfig struct {
	Mode    string `yaml:"mode"`
	Verbose bool   `yaml:"verbose"`
}

func Default() Config {
	return Config{
		API:           APIConfig{BaseURL: "http://localhost:8080", TimeoutMs: 10_000},
		Browse:        BrowseConfig{PageSize: 12, DebounceMs: 400},
		Tracking:      TrackingConfig{Country: "se"},
		Logging:       LoggingConfig{Mode: "dev"},
		ListenAddress: ":8080",
	}
}

func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.API.TimeoutMs) * time.Millisecond
}

func (c Config) DebounceDelay() time.Duration {
	return time.Duration(c.Browse.DebounceMs) * time.Millisecond
}

// Load reads path (if non-empty and present), then .env, then the
// environment.
func Load(path string) (Config, error) {
	cfg := Default()
	_ = godotenv.Load() // load .env if it exists

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnvOverrides()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnvOverrides() {
	setString(&c.API.BaseURL, "JEWELRY_API_URL")
	setInt(&c.API.TimeoutMs, "JEWELRY_HTTP_TIMEOUT_MS")
	setInt(&c.Browse.PageSize, "JEWELRY_PAGE_SIZE")
	setInt(&c.Browse.DebounceMs, "JEWELRY_DEBOUNCE_MS")
	setString(&c.Redis.Addr, "REDIS_URL")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Tracking.RabbitURL, "RABBIT_URL")
	setString(&c.Tracking.Country, "COUNTRY")
	setString(&c.Logging.Mode, "LOG_MODE")
	setString(&c.ListenAddress, "LISTEN_ADDRESS")
}

func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api base url is required")
	}
	if c.Browse.PageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", c.Browse.PageSize)
	}
	if c.Browse.DebounceMs < 0 {
		return fmt.Errorf("debounce must not be negative, got %d", c.Browse.DebounceMs)
	}
	return nil
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// setInt keeps the current value when the variable does not parse.
func setInt(dst *int, env string) {
	if v := os.Getenv(env); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
