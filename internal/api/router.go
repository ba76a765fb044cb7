package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/smartcondominium/portal/internal/api/handler"
	"github.com/smartcondominium/portal/internal/api/middleware"
	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/ports"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Log          zerolog.Logger
	Cookies      middleware.CookieConfig
	Sessions     ports.SessionStore
	Auth         ports.AuthService
	Registration ports.RegistrationService
	Shells       ports.ShellService
	Visitors     ports.VisitorService
	Payments     ports.PaymentService
	Pages        *handler.PagesHandler
	LoginLimiter *middleware.RateLimiter
	Readiness    map[string]handler.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("condo_portal"))
	e.Use(middleware.SessionCookie(d.Cookies))
	e.Use(middleware.Guard(d.Sessions, d.Cookies, d.Log))

	var limit echo.MiddlewareFunc = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	if d.LoginLimiter != nil {
		limit = d.LoginLimiter.Middleware()
	}

	// --- Probes and docs (public) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Readiness).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth flow ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Cookies)
	e.GET("/login", authHandler.Page)
	e.POST("/auth/login", authHandler.Login, limit)
	e.POST("/auth/logout", authHandler.Logout)

	registerHandler := handler.NewRegisterHandler(d.Registration, d.Cookies)
	e.GET("/register", registerHandler.State)
	e.POST("/register/step", registerHandler.Step, limit)

	// --- Dashboard shell ---
	shellHandler := handler.NewShellHandler(d.Shells)
	e.GET("/", shellHandler.Dashboard)
	e.GET("/dashboard", shellHandler.Dashboard)
	e.GET("/dashboard/:view", shellHandler.Dashboard)
	// Any other path lands on the role's home view, as the browser client did.
	e.RouteNotFound("/*", shellHandler.Dashboard)

	// --- Session API ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/payments/checkout", handler.NewPaymentHandler(d.Payments).Checkout)
	apiGroup.GET("/visitors", handler.NewVisitorHandler(d.Visitors).List, middleware.RBAC(domain.RoleResident))
	e.RouteNotFound("/api/*", func(echo.Context) error { return echo.ErrNotFound })

	// --- Standalone pages ---
	pages := d.Pages
	if pages == nil {
		pages = handler.NewPagesHandler(nil)
	}
	e.GET("/pago-exitoso", pages.PaymentResult)
	e.GET("/pase-visitante", pages.VisitorPass)

	return e
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
