package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func get(e *echo.Echo, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(echo.HeaderOrigin, origin)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newEcho(origins []string) *echo.Echo {
	e := echo.New()
	Use(e, origins)
	e.GET("/cart", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	return e
}

func TestNoOriginsNoHeaders(t *testing.T) {
	t.Parallel()

	rec := get(newEcho(nil), "https://elsewhere.example")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowCredentials))
}

func TestListedOriginsOnly(t *testing.T) {
	t.Parallel()
	e := newEcho([]string{"https://shop.example"})

	rec := get(e, "https://shop.example")
	assert.Equal(t, "https://shop.example", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))

	rec = get(e, "https://elsewhere.example")
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
