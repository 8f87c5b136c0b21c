package config

import (
	"os"

	"github.com/Skotchmaster/cellar_society/pkg/config"
)

type Config struct {
	ListenAddr    string
	AdminURL      string
	StorefrontURL string
	LogLevel      string
}

func Load() *Config {
	cfg := &Config{
		ListenAddr:    config.EnvDefault("GATEWAY_ADDR", ":8000"),
		AdminURL:      os.Getenv("ADMIN_URL"),
		StorefrontURL: os.Getenv("STOREFRONT_URL"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}
	config.MustURL(cfg.AdminURL, "ADMIN_URL")
	config.MustURL(cfg.StorefrontURL, "STOREFRONT_URL")
	return cfg
}
