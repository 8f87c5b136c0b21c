package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cellar_society/internal/service"
	"github.com/Skotchmaster/cellar_society/internal/session"
	"github.com/Skotchmaster/cellar_society/pkg/cookies"
	"github.com/Skotchmaster/cellar_society/pkg/tokens"
)

const (
	ctxVisitor = "visitor_sid"
	visitorTTL = 30 * 24 * time.Hour
)

type StorefrontHTTP struct {
	Accounts *service.AccountService
	Catalog  *service.CatalogService
	Orders   *service.OrderService
	Messages *service.MessageService
	Sessions session.Store

	Issuer            tokens.Issuer
	CookieName        string
	VisitorCookieName string
	SecureCookie      bool
}

// Visitor makes sure every request carries a visitor session id, which scopes
// the cart and the history logs.
func (h *StorefrontHTTP) Visitor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sid := ""
		if ck, err := c.Cookie(h.VisitorCookieName); err == nil {
			if id, err := uuid.Parse(ck.Value); err == nil {
				sid = id.String()
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			c.SetCookie(cookies.Create(h.VisitorCookieName, sid, "/", time.Now().Add(visitorTTL), h.SecureCookie))
		}
		c.Set(ctxVisitor, sid)
		return next(c)
	}
}

func visitorID(c echo.Context) string {
	sid, _ := c.Get(ctxVisitor).(string)
	return sid
}

func idKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func keyID(key string) (uint, bool) {
	id, err := strconv.ParseUint(key, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func noContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
