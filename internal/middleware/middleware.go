package middleware

import (
	"net/http"

	"event-hub/internal/api"
	"event-hub/internal/cache"
	"event-hub/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// SessionCookieName 是承載不透明 session token 的 cookie 名稱。
const SessionCookieName = "session_token"

var resolveSession = service.ResolveSession

func extractIdentity(c echo.Context, rdb cache.Cache) (*service.Identity, error) {
	ck, err := c.Cookie(SessionCookieName)
	if err != nil || ck.Value == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	ident, err := resolveSession(c.Request().Context(), rdb, ck.Value)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
	}
	return ident, nil
}

func RequireAuth(rdb cache.Cache) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, err := extractIdentity(c, rdb)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "authentication required"})
			}
			c.Set(ContextUserKey, ident)
			return next(c)
		}
	}
}

func RequireAdmin(rdb cache.Cache) echo.MiddlewareFunc {
	requireAuth := RequireAuth(rdb)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return requireAuth(func(c echo.Context) error {
			ident := c.Get(ContextUserKey).(*service.Identity)
			if !ident.IsAdmin {
				return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "admin privileges required"})
			}
			return next(c)
		})
	}
}
