package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/smartcondominium/portal/internal/core/domain"
)

func residentSession() *domain.Session {
	return domain.NewSession("sid", residentIdentity(), "tok")
}

func TestVisitorService_FetchesUnitThenVisitors(t *testing.T) {
	api := &stubResidentAPI{
		activeUnitFn: func(_ string, user domain.UserCode) (*domain.UnitAssignment, error) {
			if user != "42" {
				t.Errorf("unexpected user %q", user)
			}
			return &domain.UnitAssignment{CodigoPropiedad: 9}, nil
		},
		visitorsFn: func(_ string, unit int) ([]domain.Visitor, error) {
			if unit != 9 {
				t.Errorf("visitors asked for unit %d, want 9", unit)
			}
			return []domain.Visitor{{ID: 1, Nombre: "Juan", CodigoPropiedad: 9}}, nil
		},
	}
	svc := NewVisitorService(api, nil, zerolog.Nop())

	list, err := svc.List(context.Background(), residentSession())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if list.Unit != 9 || len(list.Visitors) != 1 {
		t.Errorf("unexpected list %+v", list)
	}
	if len(api.calls) != 2 || api.calls[0] != "unit" || api.calls[1] != "visitors" {
		t.Errorf("expected unit then visitors, got %v", api.calls)
	}
}

func TestVisitorService_NoUnitStopsBeforeList(t *testing.T) {
	api := &stubResidentAPI{activeUnitFn: func(string, domain.UserCode) (*domain.UnitAssignment, error) {
		return nil, domain.ErrNoActiveUnit
	}}
	svc := NewVisitorService(api, nil, zerolog.Nop())

	_, err := svc.List(context.Background(), residentSession())
	if !errors.Is(err, domain.ErrNoActiveUnit) {
		t.Fatalf("expected ErrNoActiveUnit, got %v", err)
	}
	if api.called("visitors") {
		t.Error("visitor list fetched without a unit")
	}
}

func TestVisitorService_AdminForbidden(t *testing.T) {
	svc := NewVisitorService(&stubResidentAPI{}, nil, zerolog.Nop())
	admin := domain.NewSession("sid", adminIdentity(), "tok")
	if _, err := svc.List(context.Background(), admin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestVisitorService_Superseded(t *testing.T) {
	svc := NewVisitorService(&stubResidentAPI{}, staleTracker{}, zerolog.Nop())
	if _, err := svc.List(context.Background(), residentSession()); !errors.Is(err, domain.ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
}
