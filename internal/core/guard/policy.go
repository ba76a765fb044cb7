package guard

import "strings"

// Route classifies a request path for the routing policy.
type Route string

const (
	RouteLogin         Route = "login"
	RouteRegister      Route = "register"
	RouteDashboard     Route = "dashboard"
	RouteAPI           Route = "api"
	RoutePaymentResult Route = "payment-result"
	RouteVisitorPass   Route = "visitor-pass"
	RoutePublic        Route = "public"
)

const (
	PathRoot          = "/"
	PathLogin         = "/login"
	PathRegister      = "/register"
	PathPaymentResult = "/pago-exitoso"
	PathVisitorPass   = "/pase-visitante"
)

// Classify maps a request path onto a Route. Anything not recognised is a
// dashboard path.
func Classify(path string) Route {
	p := strings.TrimSuffix(path, "/")
	if p == "" {
		p = PathRoot
	}
	switch {
	case p == PathLogin, p == "/auth/login":
		return RouteLogin
	case p == PathRegister, strings.HasPrefix(p, PathRegister+"/"):
		return RouteRegister
	case p == PathPaymentResult:
		return RoutePaymentResult
	case p == PathVisitorPass:
		return RouteVisitorPass
	case p == "/health", strings.HasPrefix(p, "/health/"),
		p == "/metrics", strings.HasPrefix(p, "/swagger"):
		return RoutePublic
	case strings.HasPrefix(p, "/api/"):
		return RouteAPI
	default:
		return RouteDashboard
	}
}

// Outcome is what the gate does with a request.
type Outcome string

const (
	Allow       Outcome = "allow"
	Redirect    Outcome = "redirect"
	Deny        Outcome = "deny"
	Placeholder Outcome = "placeholder"
)

// Decision is the routing policy's answer for one request.
type Decision struct {
	Outcome  Outcome
	Location string
}

// NeedsSession reports whether deciding route requires restoring the
// session at all. Public routes never consult the store.
func NeedsSession(route Route) bool {
	return route != RoutePublic && route != RouteVisitorPass
}

// Decide applies the routing policy.
func Decide(route Route, state State) Decision {
	if !NeedsSession(route) {
		return Decision{Outcome: Allow}
	}
	if state == Loading {
		return Decision{Outcome: Placeholder}
	}
	authed := state == Authenticated
	switch route {
	case RouteLogin, RouteRegister:
		if authed {
			return Decision{Outcome: Redirect, Location: PathRoot}
		}
		return Decision{Outcome: Allow}
	case RouteAPI:
		if !authed {
			return Decision{Outcome: Deny}
		}
		return Decision{Outcome: Allow}
	default:
		if !authed {
			return Decision{Outcome: Redirect, Location: PathLogin}
		}
		return Decision{Outcome: Allow}
	}
}
