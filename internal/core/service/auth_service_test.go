package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/guard"
	"github.com/smartcondominium/portal/internal/core/ports"
	"github.com/smartcondominium/portal/internal/infrastructure/session"
)

func newUnauthenticatedGate(t *testing.T, store ports.SessionStore) *guard.Guard {
	t.Helper()
	g := guard.New(store, "")
	if err := g.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	return g
}

func TestAuthService_Login_Success(t *testing.T) {
	store := session.NewMemoryStore(0, 0)
	sink := &recordingSink{}
	api := &stubAuthAPI{loginFn: func(email, password string) (*ports.LoginResponse, error) {
		return &ports.LoginResponse{Token: "tok-1", User: adminIdentity()}, nil
	}}
	svc := NewAuthService(api, store, sink, zerolog.Nop())
	svc.newID = func() string { return "sid-fixed" }
	gate := newUnauthenticatedGate(t, store)

	res, err := svc.Login(context.Background(), gate, "admin@condo.bo", "secret", ports.RequestMeta{IP: "10.0.0.1"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.Redirect != "/" {
		t.Errorf("expected redirect to /, got %q", res.Redirect)
	}
	if gate.State() != guard.Authenticated {
		t.Fatalf("expected Authenticated, got %s", gate.State())
	}
	if !gate.Session().IsAdmin() {
		t.Error("expected admin session")
	}

	stored, err := store.Load(context.Background(), "sid-fixed")
	if err != nil || stored == nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if stored.Token != "tok-1" {
		t.Errorf("unexpected token %q", stored.Token)
	}

	kinds := sink.kinds()
	if len(kinds) != 1 || kinds[0] != domain.AuditLogin {
		t.Errorf("expected one login audit event, got %v", kinds)
	}
	if sink.events[0].IP != "10.0.0.1" || sink.events[0].SessionID != "sid-fixed" {
		t.Errorf("unexpected audit event %+v", sink.events[0])
	}
}

func TestAuthService_Login_RejectedLeavesStoreUntouched(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"detail", &domain.RemoteError{Status: 400, Message: "Credenciales inválidas"}, "Credenciales inválidas"},
		{"no detail", &domain.RemoteError{Status: 401}, domain.MsgLoginFailed},
		{"network", domain.ErrBackendUnavailable, domain.MsgLoginFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := session.NewMemoryStore(0, 0)
			sink := &recordingSink{}
			api := &stubAuthAPI{loginFn: func(string, string) (*ports.LoginResponse, error) {
				return nil, tc.err
			}}
			svc := NewAuthService(api, store, sink, zerolog.Nop())
			svc.newID = func() string { return "never" }
			gate := newUnauthenticatedGate(t, store)

			_, err := svc.Login(context.Background(), gate, "x@condo.bo", "bad", ports.RequestMeta{})
			var fe *domain.FlowError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FlowError, got %v", err)
			}
			if fe.Message != tc.wantMsg {
				t.Errorf("expected %q, got %q", tc.wantMsg, fe.Message)
			}
			if gate.State() != guard.Unauthenticated {
				t.Errorf("gate moved to %s", gate.State())
			}
			if sess, _ := store.Load(context.Background(), "never"); sess != nil {
				t.Error("store was written on failure")
			}
			if k := sink.kinds(); len(k) != 1 || k[0] != domain.AuditLoginFailed {
				t.Errorf("expected login_failed audit, got %v", k)
			}
		})
	}
}

func TestAuthService_Login_BlankCredentials(t *testing.T) {
	store := session.NewMemoryStore(0, 0)
	api := &stubAuthAPI{loginFn: func(string, string) (*ports.LoginResponse, error) {
		t.Fatal("API must not be called")
		return nil, nil
	}}
	svc := NewAuthService(api, store, nil, zerolog.Nop())

	_, err := svc.Login(context.Background(), newUnauthenticatedGate(t, store), "  ", "", ports.RequestMeta{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	store := session.NewMemoryStore(0, 0)
	sink := &recordingSink{}
	_ = store.Save(context.Background(), "sid", *residentIdentity(), "tok")
	gate := guard.New(store, "sid")
	if err := gate.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	svc := NewAuthService(&stubAuthAPI{}, store, sink, zerolog.Nop())

	if err := svc.Logout(context.Background(), gate, ports.RequestMeta{}); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if gate.State() != guard.Unauthenticated {
		t.Errorf("expected Unauthenticated, got %s", gate.State())
	}
	if sess, _ := store.Load(context.Background(), "sid"); sess != nil {
		t.Error("session survived logout")
	}
	if k := sink.kinds(); len(k) != 1 || k[0] != domain.AuditLogout {
		t.Errorf("expected logout audit, got %v", k)
	}

	if err := svc.Logout(context.Background(), gate, ports.RequestMeta{}); !errors.Is(err, domain.ErrSessionRequired) {
		t.Errorf("expected ErrSessionRequired on second logout, got %v", err)
	}
}
