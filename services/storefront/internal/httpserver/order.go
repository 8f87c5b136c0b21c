package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cellar_society/internal/httperr"
	"github.com/Skotchmaster/cellar_society/pkg/logging"
)

func (h *StorefrontHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	id, _ := customerID(c)
	res, err := h.Orders.CustomerOrders(ctx, id, c.QueryParam("status"))
	if err != nil {
		return httperr.From(l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *StorefrontHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel")

	customer, _ := customerID(c)
	orderID, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(l, "cancel_order_error", err.Error(), err)
	}
	o, err := h.Orders.Cancel(ctx, customer, orderID)
	if err != nil {
		return httperr.From(l, "cancel_order_error", err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *StorefrontHTTP) MarkReceived(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.received")

	customer, _ := customerID(c)
	orderID, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(l, "order_received_error", err.Error(), err)
	}
	o, err := h.Orders.MarkReceived(ctx, customer, orderID)
	if err != nil {
		return httperr.From(l, "order_received_error", err)
	}
	return c.JSON(http.StatusOK, o)
}
