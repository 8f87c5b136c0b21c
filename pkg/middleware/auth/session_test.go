package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/cellar_society/pkg/tokens"
)

func newMW() *SessionMiddleware {
	return NewSessionMiddleware(tokens.Issuer{Secret: []byte("k"), Audience: "admin", TTL: time.Hour}, "admin_session", false)
}

func okHandler(c echo.Context) error {
	id, _ := UserID(c)
	return c.JSON(http.StatusOK, echo.Map{"id": id, "role": Role(c)})
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	mw := newMW()
	adminToken, _, err := mw.Issuer.Issue(tokens.RoleAdmin, 1, "admin", time.Now())
	require.NoError(t, err)
	customerToken, _, err := mw.Issuer.Issue(tokens.RoleCustomer, 2, "Ann", time.Now())
	require.NoError(t, err)

	tests := []struct {
		name   string
		cookie *http.Cookie
		status int
	}{
		{name: "no cookie", status: http.StatusUnauthorized},
		{name: "garbage", cookie: &http.Cookie{Name: "admin_session", Value: "nope"}, status: http.StatusUnauthorized},
		{name: "wrong role", cookie: &http.Cookie{Name: "admin_session", Value: customerToken}, status: http.StatusForbidden},
		{name: "admin", cookie: &http.Cookie{Name: "admin_session", Value: adminToken}, status: http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := mw.RequireAdmin(okHandler)(c)
			if tt.status == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), `"role":"admin"`)
				return
			}
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.status, he.Code)
		})
	}
}

func TestOptional_NoCookiePassesThrough(t *testing.T) {
	t.Parallel()

	mw := newMW()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw.Optional(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	_, ok := UserID(c)
	assert.False(t, ok)
}
