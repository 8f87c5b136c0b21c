package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"

	loggingmw "github.com/Skotchmaster/cellar_society/pkg/middleware/logging"
)

func Common(logger *slog.Logger) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		ecM.Recover(),
		ecM.RequestID(),
		loggingmw.RequestLogger(logger),
		ecM.Secure(),
	}
}
