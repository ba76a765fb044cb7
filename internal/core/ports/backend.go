package ports

import (
	"context"

	"github.com/smartcondominium/portal/internal/core/domain"
)

// LoginResponse is the body of a successful /api/auth/login/ call.
type LoginResponse struct {
	Token string           `json:"token"`
	User  *domain.Identity `json:"user"`
}

// AuthAPI is the authentication surface of the condominium REST API.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Register(ctx context.Context, reg domain.Registration) error
}

// ResidentAPI is the token-authenticated read surface the gateway uses.
// Every call fails with domain.ErrNotAuthorized before touching the network
// when token is empty.
type ResidentAPI interface {
	Notifications(ctx context.Context, token string) ([]domain.Notification, error)
	ActiveUnit(ctx context.Context, token string, user domain.UserCode) (*domain.UnitAssignment, error)
	Visitors(ctx context.Context, token string, unit int) ([]domain.Visitor, error)
}

// PaymentAPI starts a checkout on the condominium API and returns the
// opaque checkout session id issued by the payment processor.
type PaymentAPI interface {
	StartCheckout(ctx context.Context, token string, chargeID int, month string) (string, error)
}
