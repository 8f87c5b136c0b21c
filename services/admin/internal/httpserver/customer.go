package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cellar_society/internal/httperr"
	"github.com/Skotchmaster/cellar_society/pkg/logging"
)

func (h *AdminHTTP) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.list")

	items, err := h.Accounts.ListCustomers(ctx, c.QueryParam("search"))
	if err != nil {
		return httperr.From(l, "list_customers_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

func (h *AdminHTTP) GetCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.get")

	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(l, "get_customer_error", err.Error(), err)
	}
	detail, err := h.Accounts.CustomerDetail(ctx, id)
	if err != nil {
		return httperr.From(l, "get_customer_error", err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *AdminHTTP) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.delete")

	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(l, "delete_customer_error", err.Error(), err)
	}
	if err := h.Accounts.DeleteCustomer(ctx, id); err != nil {
		return httperr.From(l, "delete_customer_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}
