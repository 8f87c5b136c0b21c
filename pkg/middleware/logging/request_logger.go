package loggingmw

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cellar_society/pkg/logging"
)

// probe paths are polled constantly and only show up at debug level.
var probePaths = map[string]bool{
	"/health/live":  true,
	"/health/ready": true,
	"/metrics":      true,
}

// RequestLogger puts a request-scoped logger into the request context and
// writes one line per request once the handler returns. The session identity
// is added when an auth middleware further down the chain set one.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = c.Response().Header().Get(echo.HeaderXRequestID)
			}

			l := base.With("method", req.Method, "path", c.Path(), "remote_ip", c.RealIP())
			if rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			attrs := []any{"status", c.Response().Status, "duration_ms", time.Since(start).Milliseconds()}
			if uid, ok := c.Get("user_id").(uint); ok {
				attrs = append(attrs, "user_id", uid, "role", c.Get("role"))
			}

			status := c.Response().Status
			switch {
			case status >= 500:
				l.Error("request completed", append(attrs, "error", errStr(err))...)
			case status >= 400:
				l.Warn("request completed", append(attrs, "error", errStr(err))...)
			case probePaths[req.URL.Path]:
				l.Debug("request completed", attrs...)
			default:
				l.Info("request completed", append(attrs, "bytes", c.Response().Size)...)
			}
			return nil
		}
	}
}

func errStr(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
