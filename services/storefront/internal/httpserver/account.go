package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cellar_society/internal/domain"
	"github.com/Skotchmaster/cellar_society/internal/httperr"
	"github.com/Skotchmaster/cellar_society/internal/models"
	"github.com/Skotchmaster/cellar_society/internal/service"
	"github.com/Skotchmaster/cellar_society/internal/session"
	"github.com/Skotchmaster/cellar_society/pkg/cookies"
	"github.com/Skotchmaster/cellar_society/pkg/logging"
	middleware "github.com/Skotchmaster/cellar_society/pkg/middleware/auth"
	"github.com/Skotchmaster/cellar_society/services/storefront/internal/transport"
)

const recentlyViewedLimit = 10

func customerID(c echo.Context) (uint, bool) {
	return middleware.UserID(c)
}

func (h *StorefrontHTTP) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.get")

	id, _ := customerID(c)
	customer, err := h.Accounts.GetCustomer(ctx, id)
	if err != nil {
		return httperr.From(l, "profile_error", err)
	}

	sid := visitorID(c)
	resp := transport.ProfileResponse{
		Customer:       *customer,
		RecentlyViewed: []models.Product{},
		RecentSearches: []string{},
	}

	browsing, err := h.Sessions.Load(ctx, sid, session.Browsing)
	if err != nil {
		return httperr.From(l, "profile_error", err)
	}
	recent := browsing.Recent(recentlyViewedLimit)
	ids := make([]uint, 0, len(recent))
	for _, e := range recent {
		if pid, ok := keyID(e.Key); ok {
			ids = append(ids, pid)
		}
	}
	products, err := h.Catalog.ProductsByID(ctx, ids)
	if err != nil {
		return httperr.From(l, "profile_error", err)
	}
	for _, pid := range ids {
		if p, ok := products[pid]; ok {
			resp.RecentlyViewed = append(resp.RecentlyViewed, p)
		}
	}

	searches, err := h.Sessions.Load(ctx, sid, session.Searches)
	if err != nil {
		return httperr.From(l, "profile_error", err)
	}
	for _, e := range searches.Recent(0) {
		resp.RecentSearches = append(resp.RecentSearches, e.Key)
	}

	resp.UnreadMessages, err = h.Messages.UnreadCount(ctx, id, domain.SenderCustomer)
	if err != nil {
		return httperr.From(l, "profile_error", err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *StorefrontHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.update")

	id, _ := customerID(c)
	var req transport.ProfileRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(l, "update_profile_error", "invalid body", err)
	}
	customer, err := h.Accounts.UpdateProfile(ctx, id, service.ProfileInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return httperr.From(l, "update_profile_error", err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *StorefrontHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.password")

	id, _ := customerID(c)
	var req transport.PasswordRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(l, "change_password_error", "invalid body", err)
	}
	if err := h.Accounts.ChangePassword(ctx, id, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		return httperr.From(l, "change_password_error", err)
	}
	return noContent(c)
}

// DeleteAccount removes the customer and signs the visitor out.
func (h *StorefrontHTTP) DeleteAccount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.delete")

	id, _ := customerID(c)
	var req transport.DeleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(l, "delete_account_error", "invalid body", err)
	}
	if err := h.Accounts.DeleteAccount(ctx, id, req.Password, req.ConfirmText); err != nil {
		return httperr.From(l, "delete_account_error", err)
	}

	if err := h.Sessions.Clear(ctx, visitorID(c)); err != nil {
		l.Warn("session_clear_failed", "error", err)
	}
	c.SetCookie(cookies.Delete(h.CookieName, "/", h.SecureCookie))
	return noContent(c)
}

func (h *StorefrontHTTP) ClearHistory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.clear_history")

	if err := h.Sessions.Clear(ctx, visitorID(c), session.Browsing); err != nil {
		return httperr.From(l, "clear_history_error", err)
	}
	return noContent(c)
}
