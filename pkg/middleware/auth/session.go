package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cellar_society/pkg/cookies"
	"github.com/Skotchmaster/cellar_society/pkg/logging"
	"github.com/Skotchmaster/cellar_society/pkg/tokens"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxName   = "user_name"
)

type SessionMiddleware struct {
	Issuer       tokens.Issuer
	CookieName   string
	SecureCookie bool
}

func NewSessionMiddleware(issuer tokens.Issuer, cookieName string, secure bool) *SessionMiddleware {
	return &SessionMiddleware{
		Issuer:       issuer,
		CookieName:   cookieName,
		SecureCookie: secure,
	}
}

type ValidatorFunc func(claims *tokens.SessionClaims) error

func RoleValidator(role string) ValidatorFunc {
	return func(claims *tokens.SessionClaims) error {
		if claims.Role != role {
			return echo.NewHTTPError(http.StatusForbidden, role+" access required")
		}
		return nil
	}
}

func (m *SessionMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireWithValidator(next, RoleValidator(tokens.RoleAdmin))
}

func (m *SessionMiddleware) RequireCustomer(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireWithValidator(next, RoleValidator(tokens.RoleCustomer))
}

// Optional attaches the session identity when a valid cookie is present and
// never rejects the request.
func (m *SessionMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if claims, err := m.claims(c); err == nil {
			setUserContext(c, claims)
		}
		return next(c)
	}
}

func (m *SessionMiddleware) requireWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("mw", "auth.session")

		cookie, err := c.Cookie(m.CookieName)
		if err != nil || cookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		}

		claims, err := m.Issuer.Parse(cookie.Value)
		if err != nil {
			l.Warn("session_rejected", "status", 401, "error", err)
			c.SetCookie(cookies.Delete(m.CookieName, "/", m.SecureCookie))
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
		}

		if validator != nil {
			if vErr := validator(claims); vErr != nil {
				return vErr
			}
		}

		if err := setUserContext(c, claims); err != nil {
			c.SetCookie(cookies.Delete(m.CookieName, "/", m.SecureCookie))
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
		}
		return next(c)
	}
}

func (m *SessionMiddleware) claims(c echo.Context) (*tokens.SessionClaims, error) {
	cookie, err := c.Cookie(m.CookieName)
	if err != nil {
		return nil, err
	}
	return m.Issuer.Parse(cookie.Value)
}

func setUserContext(c echo.Context, claims *tokens.SessionClaims) error {
	id, err := claims.UserID()
	if err != nil {
		return err
	}
	c.Set(ctxUserID, id)
	c.Set(ctxRole, claims.Role)
	c.Set(ctxName, claims.Name)
	return nil
}

func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(ctxUserID).(uint)
	return id, ok && id != 0
}

func Role(c echo.Context) string {
	role, _ := c.Get(ctxRole).(string)
	return role
}
