package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cellar_society/internal/httperr"
	"github.com/Skotchmaster/cellar_society/internal/service"
	"github.com/Skotchmaster/cellar_society/internal/session"
	"github.com/Skotchmaster/cellar_society/pkg/logging"
)

const maxSearchKey = 100

// searchKey is the search history entry for a query: trimmed and capped at
// maxSearchKey runes.
func searchKey(q string) string {
	q = strings.TrimSpace(q)
	if r := []rune(q); len(r) > maxSearchKey {
		q = strings.TrimSpace(string(r[:maxSearchKey]))
	}
	return q
}

func (h *StorefrontHTTP) Shop(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.shop")

	q := service.ShopQuery{
		Type:   c.QueryParam("type"),
		Search: strings.TrimSpace(c.QueryParam("search")),
		Sort:   c.QueryParam("sort"),
	}

	products, err := h.Catalog.Shop(ctx, q)
	if err != nil {
		return httperr.From(l, "shop_error", err)
	}
	types, err := h.Catalog.Types(ctx)
	if err != nil {
		return httperr.From(l, "shop_error", err)
	}

	if key := searchKey(q.Search); key != "" {
		_, err := h.Sessions.Update(ctx, visitorID(c), session.Searches, func(lg *session.Log) error {
			lg.Put(key, "")
			return nil
		})
		if err != nil {
			l.Warn("search_history_failed", "error", err)
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data":  products,
		"types": types,
		"type":  q.Type,
		"sort":  q.Sort,
	})
}

func (h *StorefrontHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get")

	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(l, "get_product_error", err.Error(), err)
	}
	p, err := h.Catalog.GetProduct(ctx, id)
	if err != nil {
		return httperr.From(l, "get_product_error", err)
	}

	_, err = h.Sessions.Update(ctx, visitorID(c), session.Browsing, func(lg *session.Log) error {
		lg.Put(idKey(p.ID), p.Name)
		return nil
	})
	if err != nil {
		l.Warn("browsing_history_failed", "product_id", p.ID, "error", err)
	}

	return c.JSON(http.StatusOK, p)
}
