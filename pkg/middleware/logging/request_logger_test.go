package loggingmw

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/cellar_society/pkg/logging"
)

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler echo.HandlerFunc
		status  int
		level   string
	}{
		{
			name:    "ok",
			handler: func(c echo.Context) error { return c.NoContent(http.StatusNoContent) },
			status:  http.StatusNoContent,
			level:   "INFO",
		},
		{
			name:    "client error",
			handler: func(c echo.Context) error { return echo.NewHTTPError(http.StatusNotFound, "missing") },
			status:  http.StatusNotFound,
			level:   "WARN",
		},
		{
			name:    "server error",
			handler: func(c echo.Context) error { return echo.NewHTTPError(http.StatusInternalServerError, "boom") },
			status:  http.StatusInternalServerError,
			level:   "ERROR",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			e := echo.New()
			e.Use(RequestLogger(logging.NewWithWriter(&buf, "info")))
			e.GET("/x", func(c echo.Context) error {
				assert.NotNil(t, logging.FromContext(c.Request().Context()))
				return tt.handler(c)
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set(echo.HeaderXRequestID, "rid-1")
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "rid-1", rec.Header().Get(echo.HeaderXRequestID))

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tt.level, line["level"])
			assert.Equal(t, "rid-1", line["request_id"])
			assert.EqualValues(t, tt.status, line["status"])
		})
	}
}

func TestRequestLogger_ProbesAndIdentity(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(logging.NewWithWriter(&buf, "info")))
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/orders", func(c echo.Context) error {
		c.Set("user_id", uint(42))
		c.Set("role", "customer")
		return c.NoContent(http.StatusOK)
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Zero(t, buf.Len(), "probe requests stay below info")

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders", nil))
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.EqualValues(t, 42, line["user_id"])
	assert.Equal(t, "customer", line["role"])
	assert.Equal(t, "/orders", line["path"])
}
