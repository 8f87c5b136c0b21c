package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cellar_society/internal/httperr"
	"github.com/Skotchmaster/cellar_society/pkg/logging"
	"github.com/Skotchmaster/cellar_society/services/admin/internal/transport"
)

func (h *AdminHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	items, err := h.Catalog.ListProducts(ctx)
	if err != nil {
		return httperr.From(l, "list_products_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

func (h *AdminHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(l, "get_product_error", err.Error(), err)
	}
	p, err := h.Catalog.GetProduct(ctx, id)
	if err != nil {
		return httperr.From(l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AdminHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(l, "create_product_error", "invalid body", err)
	}

	p, err := h.Catalog.CreateProduct(ctx, req.Input())
	if err != nil {
		return httperr.From(l, "create_product_error", err)
	}
	l.Info("product_created", "product_id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *AdminHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(l, "update_product_error", err.Error(), err)
	}
	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(l, "update_product_error", "invalid body", err)
	}

	p, err := h.Catalog.UpdateProduct(ctx, id, req.Input())
	if err != nil {
		return httperr.From(l, "update_product_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AdminHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(l, "delete_product_error", err.Error(), err)
	}
	if err := h.Catalog.DeleteProduct(ctx, id); err != nil {
		return httperr.From(l, "delete_product_error", err)
	}
	l.Info("product_deleted", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
