package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cellar_society/internal/httperr"
	"github.com/Skotchmaster/cellar_society/pkg/logging"
	"github.com/Skotchmaster/cellar_society/pkg/util"
	"github.com/Skotchmaster/cellar_society/services/admin/internal/transport"
)

func (h *AdminHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	items, meta, err := h.Orders.ListOrdersPage(ctx, c.QueryParam("status"), page, size)
	if err != nil {
		return httperr.From(l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items, "meta": meta})
}

func (h *AdminHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(l, "get_order_error", err.Error(), err)
	}
	o, err := h.Orders.GetOrder(ctx, id)
	if err != nil {
		return httperr.From(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *AdminHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(l, "update_status_error", err.Error(), err)
	}
	var req transport.StatusRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(l, "update_status_error", "invalid body", err)
	}

	o, err := h.Orders.SetStatus(ctx, id, req.Status)
	if err != nil {
		return httperr.From(l, "update_status_error", err)
	}
	return c.JSON(http.StatusOK, o)
}
