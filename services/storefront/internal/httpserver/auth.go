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
	"github.com/Skotchmaster/cellar_society/services/storefront/internal/transport"
)

func (h *StorefrontHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(l, "register_error", "invalid body", err)
	}

	customer, err := h.Accounts.Register(ctx, service.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Phone:           req.Phone,
		Address:         req.Address,
	})
	if err != nil {
		return httperr.From(l, "register_error", err)
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *StorefrontHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(l, "login_error", "invalid body", err)
	}

	customer, err := h.Accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httperr.From(l, "login_error", err)
	}

	token, exp, err := h.Issuer.Issue(tokens.RoleCustomer, customer.ID, customer.Name, time.Now())
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot sign session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create session")
	}
	c.SetCookie(cookies.Create(h.CookieName, token, "/", exp, h.SecureCookie))

	l.Info("login_success", "customer_id", customer.ID)
	return c.JSON(http.StatusOK, map[string]any{"customer": customer, "expires_at": exp})
}

// Logout ends the customer session and forgets the visitor's cart and
// history.
func (h *StorefrontHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if err := h.Sessions.Clear(ctx, visitorID(c)); err != nil {
		l.Warn("logout_clear_failed", "status", 200, "reason", "session store unavailable", "error", err)
	}
	c.SetCookie(cookies.Delete(h.CookieName, "/", h.SecureCookie))
	return noContent(c)
}
