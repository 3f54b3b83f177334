package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the client's settings: where the hosted backend lives, how
// the local render surface is served and how catalog pagination behaves.
type Config struct {
	RemoteURL     string `yaml:"remote_url"`
	RemoteAnonKey string `yaml:"remote_anon_key"`

	HTTPPort        string        `yaml:"http_port"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	CatalogInitialCount int `yaml:"catalog_initial_count"`
	CatalogIncrement    int `yaml:"catalog_increment"`
}

func defaults() Config {
	return Config{
		HTTPPort:            "8080",
		RequestTimeout:      30 * time.Second,
		ShutdownTimeout:     10 * time.Second,
		CatalogInitialCount: 12,
		CatalogIncrement:    3,
	}
}

// Load builds the config from defaults, an optional YAML file and
// environment overrides, in that order.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.RemoteURL = getEnv("REMOTE_URL", cfg.RemoteURL)
	cfg.RemoteAnonKey = getEnv("REMOTE_ANON_KEY", cfg.RemoteAnonKey)
	cfg.HTTPPort = getEnv("HTTP_PORT", cfg.HTTPPort)

	if cfg.RemoteURL == "" {
		return Config{}, fmt.Errorf("remote_url is required (config file or REMOTE_URL)")
	}
	if cfg.RemoteAnonKey == "" {
		return Config{}, fmt.Errorf("remote_anon_key is required (config file or REMOTE_ANON_KEY)")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
