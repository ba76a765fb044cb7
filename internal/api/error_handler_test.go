package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smartcondominium/portal/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"echo error", echo.NewHTTPError(http.StatusNotFound, "Not Found"), http.StatusNotFound, "Not Found"},
		{"login rejected", &domain.FlowError{Message: "Credenciales inválidas.", Err: &domain.RemoteError{Status: 400, Message: "Credenciales inválidas."}}, http.StatusBadRequest, "Credenciales inválidas."},
		{"login backend down", &domain.FlowError{Message: domain.MsgLoginFailed, Err: domain.ErrBackendUnavailable}, http.StatusBadGateway, domain.MsgLoginFailed},
		{"validation", &domain.FlowError{Message: "El campo email es obligatorio.", Err: domain.ErrValidation}, http.StatusBadRequest, "El campo email es obligatorio."},
		{"session expired", fmt.Errorf("render: %w", domain.ErrSessionExpired), http.StatusUnauthorized, msgSessionExpired},
		{"no session", domain.ErrSessionRequired, http.StatusUnauthorized, "No autorizado."},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"superseded", domain.ErrSuperseded, http.StatusConflict, msgSuperseded},
		{"no unit", domain.ErrNoActiveUnit, http.StatusNotFound, domain.ErrNoActiveUnit.Error()},
		{"backend down", fmt.Errorf("%w: dial tcp", domain.ErrBackendUnavailable), http.StatusBadGateway, msgBackendUnavailable},
		{"backend 404", &domain.RemoteError{Status: 404, Message: "No encontrado."}, http.StatusNotFound, "No encontrado."},
		{"backend 500", &domain.RemoteError{Status: 500}, http.StatusBadGateway, msgBackendUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := render(t, tc.err)
			if code != tc.code || msg != tc.msg {
				t.Fatalf("expected %d %q, got %d %q", tc.code, tc.msg, code, msg)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was rewritten: %d %q", rec.Code, rec.Body.String())
	}
}
