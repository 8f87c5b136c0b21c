package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cellar_society/pkg/metrics"
	middleware "github.com/Skotchmaster/cellar_society/pkg/middleware/auth"
	"github.com/Skotchmaster/cellar_society/pkg/middleware/csrf"
	metricsmw "github.com/Skotchmaster/cellar_society/pkg/middleware/metrics"
)

type Deps struct {
	Handler *StorefrontHTTP
	Session *middleware.SessionMiddleware
	Metrics *metrics.Metrics
	// Ready reports whether the database answers.
	Ready func(ctx context.Context) error
	// CSRF is nil when double-submit protection is off.
	CSRF *csrf.Config
}

func Register(e *echo.Echo, d *Deps) {
	if d.Metrics != nil {
		e.Use(metricsmw.Middleware(d.Metrics))
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}
	if d.CSRF != nil {
		e.Use(csrf.Middleware(*d.CSRF))
	}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
			}
		}
		return c.NoContent(http.StatusOK)
	})

	h := d.Handler
	visitor := e.Group("", h.Visitor, d.Session.Optional)

	visitor.GET("/shop", h.Shop)
	visitor.GET("/products/:id", h.GetProduct)

	visitor.POST("/register", h.Register)
	visitor.POST("/login", h.Login)
	visitor.POST("/logout", h.Logout)

	visitor.GET("/cart", h.GetCart)
	visitor.POST("/cart/items", h.AddCartItem)
	visitor.PUT("/cart/items/:product_id", h.UpdateCartItem)
	visitor.DELETE("/cart/items/:product_id", h.RemoveCartItem)

	auth := d.Session.RequireCustomer
	visitor.POST("/checkout", h.Checkout, auth)

	visitor.GET("/orders", h.ListOrders, auth)
	visitor.POST("/orders/:id/cancel", h.CancelOrder, auth)
	visitor.POST("/orders/:id/received", h.MarkReceived, auth)

	visitor.GET("/profile", h.GetProfile, auth)
	visitor.PUT("/profile", h.UpdateProfile, auth)
	visitor.POST("/profile/password", h.ChangePassword, auth)
	visitor.POST("/profile/delete", h.DeleteAccount, auth)
	visitor.DELETE("/history", h.ClearHistory, auth)

	visitor.GET("/messages", h.Thread, auth)
	visitor.POST("/messages", h.PostMessage, auth)
	visitor.POST("/messages/read", h.MarkThreadRead, auth)
	visitor.GET("/messages/unread", h.UnreadCount, auth)
}
