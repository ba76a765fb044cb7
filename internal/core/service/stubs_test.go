package service

import (
	"context"
	"sync"

	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAuthAPI struct {
	loginFn    func(email, password string) (*ports.LoginResponse, error)
	registerFn func(reg domain.Registration) error
	registered []domain.Registration
}

func (a *stubAuthAPI) Login(_ context.Context, email, password string) (*ports.LoginResponse, error) {
	return a.loginFn(email, password)
}

func (a *stubAuthAPI) Register(_ context.Context, reg domain.Registration) error {
	a.registered = append(a.registered, reg)
	if a.registerFn != nil {
		return a.registerFn(reg)
	}
	return nil
}

type stubResidentAPI struct {
	notificationsFn func(token string) ([]domain.Notification, error)
	activeUnitFn    func(token string, user domain.UserCode) (*domain.UnitAssignment, error)
	visitorsFn      func(token string, unit int) ([]domain.Visitor, error)

	mu    sync.Mutex
	calls []string
}

func (r *stubResidentAPI) track(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

func (r *stubResidentAPI) Notifications(_ context.Context, token string) ([]domain.Notification, error) {
	r.track("notifications")
	if r.notificationsFn == nil {
		return nil, nil
	}
	return r.notificationsFn(token)
}

func (r *stubResidentAPI) ActiveUnit(_ context.Context, token string, user domain.UserCode) (*domain.UnitAssignment, error) {
	r.track("unit")
	if r.activeUnitFn == nil {
		return &domain.UnitAssignment{CodigoUsuario: user, CodigoPropiedad: 1}, nil
	}
	return r.activeUnitFn(token, user)
}

func (r *stubResidentAPI) Visitors(_ context.Context, token string, unit int) ([]domain.Visitor, error) {
	r.track("visitors")
	if r.visitorsFn == nil {
		return nil, nil
	}
	return r.visitorsFn(token, unit)
}

func (r *stubResidentAPI) called(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.calls {
		if c == name {
			return true
		}
	}
	return false
}

type stubPaymentAPI struct {
	sessionID string
	err       error
	gotCharge int
	gotMonth  string
}

func (p *stubPaymentAPI) StartCheckout(_ context.Context, _ string, chargeID int, month string) (string, error) {
	p.gotCharge, p.gotMonth = chargeID, month
	return p.sessionID, p.err
}

type recordingSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (s *recordingSink) Record(e domain.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *recordingSink) kinds() []domain.AuditKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditKind, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Kind)
	}
	return out
}

// staleTracker reports every generation as superseded.
type staleTracker struct{}

func (staleTracker) Begin(context.Context, string, string) (uint64, error) { return 1, nil }

func (staleTracker) IsCurrent(context.Context, string, string, uint64) (bool, error) {
	return false, nil
}

func adminIdentity() *domain.Identity {
	return &domain.Identity{
		Codigo: "1",
		Nombre: "Ana",
		Correo: "admin@condo.bo",
		Rol:    &domain.Role{ID: 1, Tipo: "admin"},
	}
}

func residentIdentity() *domain.Identity {
	return &domain.Identity{
		Codigo: "42",
		Nombre: "Rosa",
		Correo: "rosa@condo.bo",
		Rol:    &domain.Role{ID: 2, Tipo: "Copropietario"},
		URLImg: "https://cdn.condo.bo/rosa.png",
	}
}
