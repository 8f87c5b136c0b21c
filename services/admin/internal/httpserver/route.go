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
	Handler *AdminHTTP
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
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout)

	admin := e.Group("", d.Session.RequireAdmin)
	admin.GET("/dashboard", h.GetDashboard)

	admin.GET("/products", h.ListProducts)
	admin.POST("/products", h.CreateProduct)
	admin.GET("/products/:id", h.GetProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)

	admin.GET("/customers", h.ListCustomers)
	admin.GET("/customers/:id", h.GetCustomer)
	admin.DELETE("/customers/:id", h.DeleteCustomer)

	admin.GET("/orders", h.ListOrders)
	admin.GET("/orders/:id", h.GetOrder)
	admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)

	admin.GET("/messages", h.Conversations)
	admin.GET("/messages/unread", h.UnreadCount)
	admin.GET("/messages/:customer_id", h.Thread)
	admin.POST("/messages/:customer_id", h.PostMessage)
	admin.POST("/messages/:customer_id/read", h.MarkThreadRead)
}
