package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEcho(cfg Config) *echo.Echo {
	e := echo.New()
	e.Use(Middleware(cfg))
	h := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	e.GET("/cart", h)
	e.POST("/cart/items", h)
	e.POST("/login", h)
	return e
}

func TestGetIssuesToken(t *testing.T) {
	t.Parallel()

	e := newEcho(Config{})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	token := rec.Header().Get("X-CSRF-Token")
	require.NotEmpty(t, token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "XSRF-TOKEN", cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
}

func TestUnsafeMethods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cookie string
		header string
		origin string
		path   string
		status int
	}{
		{name: "matching token", cookie: "tok", header: "tok", origin: "http://example.com", path: "/cart/items", status: http.StatusNoContent},
		{name: "missing header", cookie: "tok", origin: "http://example.com", path: "/cart/items", status: http.StatusForbidden},
		{name: "mismatched token", cookie: "tok", header: "other", origin: "http://example.com", path: "/cart/items", status: http.StatusForbidden},
		{name: "foreign origin", cookie: "tok", header: "tok", origin: "http://evil.test", path: "/cart/items", status: http.StatusForbidden},
		{name: "skipped path", path: "/login", status: http.StatusNoContent},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newEcho(Config{SkipPaths: []string{"/login"}})
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			req.Host = "example.com"
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("X-CSRF-Token", tt.header)
			}
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
