package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cellar_society/internal/httperr"
	"github.com/Skotchmaster/cellar_society/internal/service"
	"github.com/Skotchmaster/cellar_society/pkg/cookies"
	"github.com/Skotchmaster/cellar_society/pkg/logging"
	"github.com/Skotchmaster/cellar_society/pkg/tokens"
	"github.com/Skotchmaster/cellar_society/services/admin/internal/transport"
)

type AdminHTTP struct {
	Accounts  *service.AccountService
	Catalog   *service.CatalogService
	Orders    *service.OrderService
	Messages  *service.MessageService
	Dashboard *service.DashboardService

	Issuer       tokens.Issuer
	CookieName   string
	SecureCookie bool
}

func (h *AdminHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(l, "login_error", "invalid body", err)
	}

	admin, err := h.Accounts.AdminLogin(ctx, req.Username, req.Password)
	if err != nil {
		return httperr.From(l, "login_error", err)
	}

	token, exp, err := h.Issuer.Issue(tokens.RoleAdmin, admin.ID, admin.Username, time.Now())
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot sign session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create session")
	}
	c.SetCookie(cookies.Create(h.CookieName, token, "/", exp, h.SecureCookie))

	l.Info("login_success", "admin_id", admin.ID)
	return c.JSON(http.StatusOK, map[string]any{
		"id":         admin.ID,
		"username":   admin.Username,
		"expires_at": exp,
	})
}

func (h *AdminHTTP) Logout(c echo.Context) error {
	c.SetCookie(cookies.Delete(h.CookieName, "/", h.SecureCookie))
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHTTP) GetDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.get")

	d, err := h.Dashboard.Dashboard(ctx)
	if err != nil {
		return httperr.From(l, "dashboard_error", err)
	}
	return c.JSON(http.StatusOK, d)
}
