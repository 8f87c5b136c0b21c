package cors

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Use lets the listed origins call e with cookies. With no origins nothing is
// installed and browsers keep to same-origin requests.
func Use(e *echo.Echo, origins []string) {
	if len(origins) == 0 {
		return
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     origins,
		AllowCredentials: true,
	}))
}
