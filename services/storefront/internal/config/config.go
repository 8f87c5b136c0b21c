package config

import (
	"os"

	"github.com/Skotchmaster/cellar_society/pkg/config"
)

const (
	DefaultPort       = 8080
	SessionCookieName = "customer_session"
	VisitorCookieName = "customer_sid"
	SessionAudience   = "storefront"
)

type ServiceConfig struct {
	config.Config
	SecureCookie bool
}

func Load() ServiceConfig {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "cellar-storefront"
	}
	if os.Getenv("SERVER_PORT") == "" {
		cfg.ServerPort = DefaultPort
	}

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.SessionSecret, "SESSION_SECRET")

	return ServiceConfig{
		Config:       cfg,
		SecureCookie: config.EnvDefault("COOKIE_SECURE", "false") == "true",
	}
}
