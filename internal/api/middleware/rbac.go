package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcondominium/portal/internal/core/domain"
)

// RBAC restricts a route to sessions of the given role kinds. It must run
// after Guard.
func RBAC(allowed ...domain.RoleKind) echo.MiddlewareFunc {
	set := make(map[domain.RoleKind]struct{}, len(allowed))
	for _, k := range allowed {
		set[k] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			g := Gate(c)
			if g == nil || g.Session() == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": domain.ErrNotAuthorized.Error()})
			}
			if _, ok := set[g.Session().Kind]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
