package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smartcondominium/portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

const (
	msgSessionExpired     = "Su sesión ha expirado. Inicie sesión nuevamente."
	msgBackendUnavailable = "El servicio no está disponible en este momento. Intente más tarde."
	msgSuperseded         = "La solicitud fue reemplazada por una más reciente."
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// A flow error already carries its one user-facing message.
	var fe *domain.FlowError
	if errors.As(err, &fe) {
		return statusOf(fe.Err), fe.Message
	}

	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, msgSessionExpired
	case errors.Is(err, domain.ErrNotAuthorized), errors.Is(err, domain.ErrSessionRequired):
		return http.StatusUnauthorized, domain.ErrNotAuthorized.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrSuperseded):
		return http.StatusConflict, msgSuperseded
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidStep), errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNoActiveUnit):
		return http.StatusNotFound, domain.ErrNoActiveUnit.Error()
	case errors.Is(err, domain.ErrBackendUnavailable):
		log.Warn().Err(err).Str("path", c.Path()).Msg("backend unavailable")
		return http.StatusBadGateway, msgBackendUnavailable
	}

	var re *domain.RemoteError
	if errors.As(err, &re) {
		return statusOf(re), domain.UserMessage(re, msgBackendUnavailable)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// statusOf maps the cause of a failed action onto an HTTP status. Backend
// 4xx answers pass through; everything the backend could not answer is a
// bad gateway.
func statusOf(err error) int {
	var re *domain.RemoteError
	switch {
	case err == nil:
		return http.StatusBadRequest
	case errors.As(err, &re):
		if re.Status >= 400 && re.Status < 500 {
			return re.Status
		}
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidStep):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotAuthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrBackendUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
