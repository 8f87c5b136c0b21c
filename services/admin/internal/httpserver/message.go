package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cellar_society/internal/domain"
	"github.com/Skotchmaster/cellar_society/internal/httperr"
	"github.com/Skotchmaster/cellar_society/pkg/logging"
	"github.com/Skotchmaster/cellar_society/services/admin/internal/transport"
)

func (h *AdminHTTP) Conversations(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "message.conversations")

	items, err := h.Messages.Conversations(ctx)
	if err != nil {
		return httperr.From(l, "conversations_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

// Thread shows one customer's conversation. Viewing it acknowledges the
// customer's messages.
func (h *AdminHTTP) Thread(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "message.thread")

	customerID, err := httperr.ParamID(c, "customer_id")
	if err != nil {
		return httperr.BadRequest(l, "thread_error", err.Error(), err)
	}
	customer, err := h.Accounts.GetCustomer(ctx, customerID)
	if err != nil {
		return httperr.From(l, "thread_error", err)
	}
	msgs, err := h.Messages.OpenThread(ctx, customerID, domain.SenderAdmin)
	if err != nil {
		return httperr.From(l, "thread_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"customer": customer, "messages": msgs})
}

func (h *AdminHTTP) PostMessage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "message.post")

	customerID, err := httperr.ParamID(c, "customer_id")
	if err != nil {
		return httperr.BadRequest(l, "post_message_error", err.Error(), err)
	}
	var req transport.MessageRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(l, "post_message_error", "invalid body", err)
	}

	m, err := h.Messages.Post(ctx, customerID, domain.SenderAdmin, req.Message)
	if err != nil {
		return httperr.From(l, "post_message_error", err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *AdminHTTP) MarkThreadRead(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "message.mark_read")

	customerID, err := httperr.ParamID(c, "customer_id")
	if err != nil {
		return httperr.BadRequest(l, "mark_read_error", err.Error(), err)
	}
	n, err := h.Messages.MarkThreadRead(ctx, customerID, domain.SenderAdmin)
	if err != nil {
		return httperr.From(l, "mark_read_error", err)
	}
	return c.JSON(http.StatusOK, transport.MarkReadResponse{Marked: n})
}

func (h *AdminHTTP) UnreadCount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "message.unread")

	n, err := h.Messages.TotalUnreadForAdmin(ctx)
	if err != nil {
		return httperr.From(l, "unread_error", err)
	}
	return c.JSON(http.StatusOK, transport.UnreadResponse{Unread: n})
}
