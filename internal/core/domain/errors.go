package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotAuthorized      = errors.New("No autorizado.")
	ErrSessionRequired    = errors.New("session required")
	ErrSessionExpired     = errors.New("session expired")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidTransition  = errors.New("invalid guard transition")
	ErrSuperseded         = errors.New("superseded by a newer request")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidStep        = errors.New("invalid registration step")
	ErrNoActiveUnit       = errors.New("No se encontró una propiedad activa vinculada a este usuario.")
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// RemoteError is a non-2xx answer from the condominium API, reduced to one
// user-facing message.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("backend rejected request (%d): %s", e.Status, e.Message)
}

// Unauthorized reports whether the backend rejected the token itself.
func (e *RemoteError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// IsUnauthorized reports whether err is a missing token or a backend 401.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrNotAuthorized) {
		return true
	}
	var re *RemoteError
	return errors.As(err, &re) && re.Unauthorized()
}

// User-facing fallbacks of the auth flow.
const (
	MsgLoginFailed    = "Error al iniciar sesión. Verifique sus credenciales."
	MsgRegisterFailed = "No se pudo completar el registro."
)

// FlowError is a failed user action reduced to the one message shown for
// it. Err keeps the cause for status mapping and logs.
type FlowError struct {
	Message string
	Err     error
}

func (e *FlowError) Error() string { return e.Message }

func (e *FlowError) Unwrap() error { return e.Err }

// UserMessage returns the text meant for display next to the form.
func UserMessage(err error, fallback string) string {
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	if errors.Is(err, ErrNotAuthorized) {
		return ErrNotAuthorized.Error()
	}
	return fallback
}
