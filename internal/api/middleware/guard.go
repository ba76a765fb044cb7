package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smartcondominium/portal/internal/api/metrics"
	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/guard"
	"github.com/smartcondominium/portal/internal/core/ports"
)

// ContextGate holds the request's *guard.Guard.
const ContextGate = "gate"

// PlaceholderText is shown while the session store cannot answer.
const PlaceholderText = "Cargando..."

const placeholderHTML = `<!DOCTYPE html><html lang="es"><head><meta charset="utf-8"><title>SmartCondominium</title></head><body><p>` + PlaceholderText + `</p></body></html>`

// Guard restores the session behind the cookie once per request and applies
// the routing policy. It must run after SessionCookie.
func Guard(store ports.SessionStore, cookies CookieConfig, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := guard.Classify(c.Request().URL.Path)
			if !guard.NeedsSession(route) {
				return next(c)
			}

			sid := SessionID(c)
			g := guard.New(store, sid)
			if err := g.Restore(c.Request().Context()); err != nil {
				log.Warn().Err(err).Str("path", c.Request().URL.Path).Msg("session restore failed")
			}
			metrics.SessionRestoresTotal.WithLabelValues(string(g.State())).Inc()

			if sid != "" && g.State() == guard.Unauthenticated {
				ClearSessionCookie(c, cookies)
			}
			c.Set(ContextGate, g)

			d := guard.Decide(route, g.State())
			switch d.Outcome {
			case guard.Allow:
				return next(c)
			case guard.Redirect:
				return c.Redirect(http.StatusSeeOther, d.Location)
			case guard.Deny:
				return domain.ErrNotAuthorized
			default:
				c.Response().Header().Set("Retry-After", "1")
				if route == guard.RouteAPI {
					return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": PlaceholderText})
				}
				return c.HTML(http.StatusServiceUnavailable, placeholderHTML)
			}
		}
	}
}

// Gate returns the guard attached by Guard, or nil on public routes.
func Gate(c echo.Context) *guard.Guard {
	g, _ := c.Get(ContextGate).(*guard.Guard)
	return g
}
