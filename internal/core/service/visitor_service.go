package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/ports"
)

// VisitorService lists the visitors of a resident's active unit. The unit
// must be known before the list can be asked for, so the two calls run in
// sequence.
type VisitorService struct {
	api  ports.ResidentAPI
	gens ports.GenerationTracker
	log  zerolog.Logger
}

func NewVisitorService(api ports.ResidentAPI, gens ports.GenerationTracker, log zerolog.Logger) *VisitorService {
	return &VisitorService{api: api, gens: gens, log: log}
}

var _ ports.VisitorService = (*VisitorService)(nil)

func (s *VisitorService) List(ctx context.Context, sess *domain.Session) (*ports.VisitorList, error) {
	if sess == nil {
		return nil, domain.ErrSessionRequired
	}
	if sess.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	gen, err := beginGeneration(ctx, s.gens, sess.ID, ScopeVisitors)
	if err != nil {
		return nil, err
	}

	unit, err := s.api.ActiveUnit(ctx, sess.Token, sess.Identity.Codigo)
	if err != nil {
		return nil, fmt.Errorf("resolve unit: %w", err)
	}
	visitors, err := s.api.Visitors(ctx, sess.Token, unit.CodigoPropiedad)
	if err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}

	if err := checkGeneration(ctx, s.gens, sess.ID, ScopeVisitors, gen); err != nil {
		return nil, err
	}
	if visitors == nil {
		visitors = []domain.Visitor{}
	}
	return &ports.VisitorList{Unit: unit.CodigoPropiedad, Visitors: visitors}, nil
}
