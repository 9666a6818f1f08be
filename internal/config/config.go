// Package config loads service configuration from an optional YAML file
// with ANIDEX_* environment overrides. Env always wins over the file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr           string `yaml:"addr"`
	DatabaseURL    string `yaml:"database_url"`
	JWTSecret      string `yaml:"jwt_secret"`
	AdminMasterKey string `yaml:"admin_master_key"`

	Media MediaConfig `yaml:"media"`
}

type MediaConfig struct {
	ShareBaseURL string `yaml:"share_base_url"`
	WatchBaseURL string `yaml:"watch_base_url"`
}

// Load reads the file at path (skipped when path is empty or the file does
// not exist), applies env overrides, then validates.
func Load(path string) (Config, error) {
	cfg := Config{
		Addr: ":8080",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	override(&cfg.Addr, "ANIDEX_ADDR")
	override(&cfg.DatabaseURL, "ANIDEX_DATABASE_URL")
	override(&cfg.JWTSecret, "ANIDEX_JWT_SECRET")
	override(&cfg.AdminMasterKey, "ANIDEX_ADMIN_MASTER_KEY")
	override(&cfg.Media.ShareBaseURL, "ANIDEX_MEDIA_SHARE_BASE_URL")
	override(&cfg.Media.WatchBaseURL, "ANIDEX_MEDIA_WATCH_BASE_URL")

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url is required (ANIDEX_DATABASE_URL)")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required (ANIDEX_JWT_SECRET)")
	}
	return nil
}

func override(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
