package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/smartcondominium/portal/internal/api/middleware"
	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/guard"
	"github.com/smartcondominium/portal/internal/core/ports"
)

// requestMeta collects the client details recorded in the audit trail.
func requestMeta(c echo.Context) ports.RequestMeta {
	return ports.RequestMeta{
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}

// ctxGate returns the request's guard and fails fast when the route was
// mounted without the Guard middleware.
func ctxGate(c echo.Context) (*guard.Guard, error) {
	g := middleware.Gate(c)
	if g == nil {
		return nil, domain.ErrSessionRequired
	}
	return g, nil
}

// ctxSession is ctxGate for handlers that only need an authenticated
// session.
func ctxSession(c echo.Context) (*domain.Session, error) {
	g, err := ctxGate(c)
	if err != nil {
		return nil, err
	}
	sess := g.Session()
	if sess == nil {
		return nil, domain.ErrSessionRequired
	}
	return sess, nil
}
