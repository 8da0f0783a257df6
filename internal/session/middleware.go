package session

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/discoshop/backend/internal/models"
)

const contextKey = "identity"

// Attach resolves the request identity and stashes it for handlers. It
// never rejects; anonymous requests just carry no identity.
func Attach(p Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, err := p.Resolve(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "session lookup failed")
			}
			if ident != nil {
				c.Set(contextKey, ident)
			}
			return next(c)
		}
	}
}

// FromContext returns the identity attached to the request, or nil for
// anonymous callers.
func FromContext(c echo.Context) *Identity {
	if v, ok := c.Get(contextKey).(*Identity); ok {
		return v
	}
	return nil
}

func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if FromContext(c) == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
		}
		return next(c)
	}
}

func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident := FromContext(c)
			if ident == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			if _, ok := allowed[ident.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
			}
			return next(c)
		}
	}
}
