package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cellar_society/internal/domain"
	"github.com/Skotchmaster/cellar_society/internal/httperr"
	"github.com/Skotchmaster/cellar_society/pkg/logging"
	"github.com/Skotchmaster/cellar_society/services/storefront/internal/transport"
)

// Thread returns the customer's conversation and acknowledges the admin's
// replies in it.
func (h *StorefrontHTTP) Thread(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "message.thread")

	id, _ := customerID(c)
	msgs, err := h.Messages.OpenThread(ctx, id, domain.SenderCustomer)
	if err != nil {
		return httperr.From(l, "thread_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"messages": msgs})
}

func (h *StorefrontHTTP) PostMessage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "message.post")

	id, _ := customerID(c)
	var req transport.MessageRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(l, "post_message_error", "invalid body", err)
	}
	m, err := h.Messages.Post(ctx, id, domain.SenderCustomer, req.Message)
	if err != nil {
		return httperr.From(l, "post_message_error", err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *StorefrontHTTP) MarkThreadRead(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "message.mark_read")

	id, _ := customerID(c)
	n, err := h.Messages.MarkThreadRead(ctx, id, domain.SenderCustomer)
	if err != nil {
		return httperr.From(l, "mark_read_error", err)
	}
	return c.JSON(http.StatusOK, transport.MarkReadResponse{Marked: n})
}

func (h *StorefrontHTTP) UnreadCount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "message.unread")

	id, _ := customerID(c)
	n, err := h.Messages.UnreadCount(ctx, id, domain.SenderCustomer)
	if err != nil {
		return httperr.From(l, "unread_error", err)
	}
	return c.JSON(http.StatusOK, transport.UnreadResponse{Unread: n})
}
