package config

import (
	"os"

	"github.com/Skotchmaster/cellar_society/pkg/config"
)

const (
	DefaultPort       = 8081
	SessionCookieName = "admin_session"
	SessionAudience   = "admin"
)

type ServiceConfig struct {
	config.Config
	AdminDefaultPassword string
	SecureCookie         bool
}

func Load() ServiceConfig {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "cellar-admin"
	}
	if os.Getenv("SERVER_PORT") == "" {
		cfg.ServerPort = DefaultPort
	}

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.SessionSecret, "SESSION_SECRET")

	return ServiceConfig{
		Config:               cfg,
		AdminDefaultPassword: config.EnvDefault("ADMIN_DEFAULT_PASSWORD", "admin123"),
		SecureCookie:         config.EnvDefault("COOKIE_SECURE", "false") == "true",
	}
}
