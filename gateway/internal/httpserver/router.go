package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cellar_society/gateway/internal/middleware"
)

const AdminPrefix = "/admin"

type Deps struct {
	AdminURL      string
	StorefrontURL string
	Logger        *slog.Logger
	// HealthClient probes the upstreams for /health/ready.
	HealthClient *http.Client
}

func Register(e *echo.Echo, d *Deps) error {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.HealthClient == nil {
		d.HealthClient = &http.Client{Timeout: 2 * time.Second}
	}

	admin, err := newUpstream("admin", d.AdminURL, AdminPrefix)
	if err != nil {
		return fmt.Errorf("admin url: %w", err)
	}
	storefront, err := newUpstream("storefront", d.StorefrontURL, "")
	if err != nil {
		return fmt.Errorf("storefront url: %w", err)
	}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		for _, up := range []*upstream{admin, storefront} {
			if err := probe(c.Request().Context(), d.HealthClient, up); err != nil {
				d.Logger.Warn("upstream_not_ready", "upstream", up.name, "error", err)
				return echo.NewHTTPError(http.StatusServiceUnavailable, up.name+" unavailable")
			}
		}
		return c.NoContent(http.StatusOK)
	})

	for _, m := range middleware.Common(d.Logger) {
		e.Use(m)
	}

	e.Any(AdminPrefix, admin.handler)
	e.Any(AdminPrefix+"/*", admin.handler)
	e.Any("/*", storefront.handler)

	return nil
}

func probe(ctx context.Context, client *http.Client, up *upstream) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, up.target.JoinPath("/health/ready").String(), nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
