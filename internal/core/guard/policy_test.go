package guard

import "testing"

func TestClassify(t *testing.T) {
	cases := map[string]Route{
		"/":                   RouteDashboard,
		"":                    RouteDashboard,
		"/dashboard/cuotas":   RouteDashboard,
		"/login":              RouteLogin,
		"/login/":             RouteLogin,
		"/auth/login":         RouteLogin,
		"/auth/logout":        RouteDashboard,
		"/register":           RouteRegister,
		"/register/step":      RouteRegister,
		"/registerx":          RouteDashboard,
		"/pago-exitoso":       RoutePaymentResult,
		"/pase-visitante":     RouteVisitorPass,
		"/health":             RoutePublic,
		"/health/ready":       RoutePublic,
		"/metrics":            RoutePublic,
		"/swagger/index.html": RoutePublic,
		"/api/visitors":       RouteAPI,
	}
	for path, want := range cases {
		if got := Classify(path); got != want {
			t.Errorf("Classify(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestDecide(t *testing.T) {
	cases := []struct {
		route    Route
		state    State
		outcome  Outcome
		location string
	}{
		{RouteLogin, Authenticated, Redirect, PathRoot},
		{RouteRegister, Authenticated, Redirect, PathRoot},
		{RouteLogin, Unauthenticated, Allow, ""},
		{RouteRegister, Unauthenticated, Allow, ""},
		{RouteDashboard, Unauthenticated, Redirect, PathLogin},
		{RouteDashboard, Authenticated, Allow, ""},
		{RoutePaymentResult, Unauthenticated, Redirect, PathLogin},
		{RoutePaymentResult, Authenticated, Allow, ""},
		{RouteAPI, Unauthenticated, Deny, ""},
		{RouteAPI, Authenticated, Allow, ""},
		{RouteVisitorPass, Unauthenticated, Allow, ""},
		{RouteVisitorPass, Loading, Allow, ""},
		{RoutePublic, Loading, Allow, ""},
		{RouteDashboard, Loading, Placeholder, ""},
		{RouteLogin, Loading, Placeholder, ""},
		{RouteAPI, Loading, Placeholder, ""},
	}
	for _, tc := range cases {
		d := Decide(tc.route, tc.state)
		if d.Outcome != tc.outcome || d.Location != tc.location {
			t.Errorf("Decide(%s, %s) = %+v, want %s %q", tc.route, tc.state, d, tc.outcome, tc.location)
		}
	}
}
