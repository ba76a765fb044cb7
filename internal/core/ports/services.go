package ports

import (
	"context"

	"github.com/smartcondominium/portal/internal/core/dispatch"
	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/navigation"
)

// RequestMeta carries client details recorded in the audit trail.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// Gate is the per-request view of the route guard that services drive.
type Gate interface {
	Session() *domain.Session
	Login(sid string, sess *domain.Session) error
	Logout(ctx context.Context) error
}

// LoginResult is returned by AuthService.Login.
type LoginResult struct {
	Session  *domain.Session
	Redirect string
}

// AuthService is the login/logout half of the auth flow.
type AuthService interface {
	Login(ctx context.Context, gate Gate, email, password string, meta RequestMeta) (*LoginResult, error)
	Logout(ctx context.Context, gate Gate, meta RequestMeta) error
}

// WizardAction is a registration wizard command.
type WizardAction string

const (
	WizardNext   WizardAction = "next"
	WizardBack   WizardAction = "back"
	WizardSubmit WizardAction = "submit"
)

// WizardResult describes the wizard after one command.
type WizardResult struct {
	Step      int                 `json:"step"`
	Steps     int                 `json:"steps"`
	Data      domain.Registration `json:"data"`
	Error     string              `json:"error,omitempty"`
	Completed bool                `json:"completed"`
	Redirect  string              `json:"redirect,omitempty"`
}

// RegistrationService drives the registration wizard.
type RegistrationService interface {
	State(ctx context.Context, draftID string) (*WizardResult, error)
	Apply(ctx context.Context, draftID string, action WizardAction, fields domain.Registration, meta RequestMeta) (*WizardResult, error)
}

// ShellRequest is one render of the dashboard shell.
type ShellRequest struct {
	Gate     Gate
	View     string
	Expanded navigation.Expansion
	Meta     RequestMeta
}

// Header is the identity chrome of the shell.
type Header struct {
	Name          string `json:"name"`
	AvatarInitial string `json:"avatar_initial"`
	PhotoURL      string `json:"photo_url,omitempty"`
	Unit          *int   `json:"unit,omitempty"`
	UnitError     string `json:"unit_error,omitempty"`
}

// NotificationItem is a notification as shown in the header panel.
type NotificationItem struct {
	domain.Notification
	Icon string `json:"icon"`
}

// NotificationPanel is the bell indicator and its panel.
type NotificationPanel struct {
	Count int                `json:"count"`
	Items []NotificationItem `json:"items"`
	Error string             `json:"error,omitempty"`
}

// Shell is the payload of an authenticated dashboard render.
type Shell struct {
	Role          domain.RoleKind     `json:"role"`
	Title         string              `json:"title"`
	ActiveView    dispatch.ViewKey    `json:"active_view"`
	View          dispatch.Resolution `json:"view"`
	Menu          navigation.Menu     `json:"menu"`
	Expanded      string              `json:"expanded,omitempty"`
	Header        Header              `json:"header"`
	Notifications NotificationPanel   `json:"notifications"`
}

// ShellService renders the dashboard shell.
type ShellService interface {
	Render(ctx context.Context, req ShellRequest) (*Shell, error)
}

// VisitorList is the visitor table of one unit.
type VisitorList struct {
	Unit     int              `json:"unit"`
	Visitors []domain.Visitor `json:"visitors"`
}

// VisitorService lists the visitors of the caller's unit.
type VisitorService interface {
	List(ctx context.Context, sess *domain.Session) (*VisitorList, error)
}

// CheckoutResult is what the frontend needs to redirect to the processor.
type CheckoutResult struct {
	SessionID      string `json:"session_id"`
	PublishableKey string `json:"publishable_key,omitempty"`
}

// PaymentService hands a charge over to the external checkout.
type PaymentService interface {
	Checkout(ctx context.Context, sess *domain.Session, chargeID int, month string) (*CheckoutResult, error)
}
