package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/cellar_society/internal/domain"
	"github.com/Skotchmaster/cellar_society/internal/httperr"
	"github.com/Skotchmaster/cellar_society/internal/repo"
	"github.com/Skotchmaster/cellar_society/internal/session"
	"github.com/Skotchmaster/cellar_society/pkg/logging"
	"github.com/Skotchmaster/cellar_society/services/storefront/internal/transport"
)

// cartLines decodes the cart log, oldest line first. Entries that do not
// parse are skipped.
func cartLines(lg *session.Log) []repo.OrderLine {
	entries := lg.Entries()
	lines := make([]repo.OrderLine, 0, len(entries))
	for _, e := range entries {
		id, ok := keyID(e.Key)
		if !ok {
			continue
		}
		qty, err := strconv.Atoi(e.Value)
		if err != nil || qty <= 0 {
			continue
		}
		lines = append(lines, repo.OrderLine{ProductID: id, Quantity: qty})
	}
	return lines
}

func (h *StorefrontHTTP) cart(ctx context.Context, sid string) (*transport.CartResponse, error) {
	lg, err := h.Sessions.Load(ctx, sid, session.Cart)
	if err != nil {
		return nil, err
	}
	lines := cartLines(lg)

	ids := make([]uint, 0, len(lines))
	for _, ln := range lines {
		ids = append(ids, ln.ProductID)
	}
	products, err := h.Catalog.ProductsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	resp := &transport.CartResponse{Items: []transport.CartLine{}, Total: decimal.Zero}
	for _, ln := range lines {
		p, ok := products[ln.ProductID]
		if !ok {
			continue
		}
		sub := p.Price.Mul(decimal.NewFromInt(int64(ln.Quantity)))
		resp.Items = append(resp.Items, transport.CartLine{Product: p, Quantity: ln.Quantity, Subtotal: sub})
		resp.Total = resp.Total.Add(sub)
		resp.ItemCount += ln.Quantity
	}
	return resp, nil
}

func (h *StorefrontHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	resp, err := h.cart(ctx, visitorID(c))
	if err != nil {
		return httperr.From(l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *StorefrontHTTP) AddCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.CartItemRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(l, "add_cart_error", "invalid body", err)
	}
	if req.Quantity <= 0 {
		return httperr.BadRequest(l, "add_cart_error", "quantity must be positive", nil)
	}
	p, err := h.Catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return httperr.From(l, "add_cart_error", err)
	}

	sid := visitorID(c)
	_, err = h.Sessions.Update(ctx, sid, session.Cart, func(lg *session.Log) error {
		qty := req.Quantity
		if cur, ok := lg.Get(idKey(p.ID)); ok {
			if n, err := strconv.Atoi(cur); err == nil {
				qty += n
			}
		}
		if qty > p.Stock {
			return fmt.Errorf("%w: only %d bottles of %s left", domain.ErrInsufficientStock, p.Stock, p.Name)
		}
		lg.Put(idKey(p.ID), strconv.Itoa(qty))
		return nil
	})
	if err != nil {
		return httperr.From(l, "add_cart_error", err)
	}

	resp, err := h.cart(ctx, sid)
	if err != nil {
		return httperr.From(l, "add_cart_error", err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *StorefrontHTTP) UpdateCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	productID, err := httperr.ParamID(c, "product_id")
	if err != nil {
		return httperr.BadRequest(l, "update_cart_error", err.Error(), err)
	}
	var req transport.CartQuantityRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(l, "update_cart_error", "invalid body", err)
	}

	sid := visitorID(c)
	if req.Quantity <= 0 {
		_, err = h.Sessions.Update(ctx, sid, session.Cart, func(lg *session.Log) error {
			lg.Remove(idKey(productID))
			return nil
		})
	} else {
		p, gErr := h.Catalog.GetProduct(ctx, productID)
		if gErr != nil {
			return httperr.From(l, "update_cart_error", gErr)
		}
		if req.Quantity > p.Stock {
			err = fmt.Errorf("%w: only %d bottles of %s left", domain.ErrInsufficientStock, p.Stock, p.Name)
		} else {
			_, err = h.Sessions.Update(ctx, sid, session.Cart, func(lg *session.Log) error {
				lg.Put(idKey(productID), strconv.Itoa(req.Quantity))
				return nil
			})
		}
	}
	if err != nil {
		return httperr.From(l, "update_cart_error", err)
	}

	resp, err := h.cart(ctx, sid)
	if err != nil {
		return httperr.From(l, "update_cart_error", err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *StorefrontHTTP) RemoveCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	productID, err := httperr.ParamID(c, "product_id")
	if err != nil {
		return httperr.BadRequest(l, "remove_cart_error", err.Error(), err)
	}
	_, err = h.Sessions.Update(ctx, visitorID(c), session.Cart, func(lg *session.Log) error {
		lg.Remove(idKey(productID))
		return nil
	})
	if err != nil {
		return httperr.From(l, "remove_cart_error", err)
	}
	return noContent(c)
}

func (h *StorefrontHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.checkout")

	id, ok := customerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}
	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(l, "checkout_error", "invalid body", err)
	}

	sid := visitorID(c)
	lg, err := h.Sessions.Load(ctx, sid, session.Cart)
	if err != nil {
		return httperr.From(l, "checkout_error", err)
	}

	res, err := h.Orders.Checkout(ctx, id, req.Address, cartLines(lg))
	if err != nil {
		return httperr.From(l, "checkout_error", err)
	}

	if err := h.Sessions.Clear(ctx, sid, session.Cart); err != nil {
		l.Warn("cart_clear_failed", "error", err)
	}
	return c.JSON(http.StatusCreated, res)
}
