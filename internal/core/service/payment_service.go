package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/ports"
)

// PaymentService hands a pending charge to the external checkout.
type PaymentService struct {
	api            ports.PaymentAPI
	publishableKey string
	log            zerolog.Logger
}

func NewPaymentService(api ports.PaymentAPI, publishableKey string, log zerolog.Logger) *PaymentService {
	return &PaymentService{api: api, publishableKey: publishableKey, log: log}
}

var _ ports.PaymentService = (*PaymentService)(nil)

func (s *PaymentService) Checkout(ctx context.Context, sess *domain.Session, chargeID int, month string) (*ports.CheckoutResult, error) {
	if sess == nil {
		return nil, domain.ErrSessionRequired
	}
	month = strings.TrimSpace(month)
	if chargeID <= 0 || month == "" {
		return nil, &domain.FlowError{Message: "Seleccione un cargo válido para pagar.", Err: domain.ErrValidation}
	}

	id, err := s.api.StartCheckout(ctx, sess.Token, chargeID, month)
	if err != nil {
		s.log.Warn().Err(err).Int("charge_id", chargeID).Msg("checkout failed")
		return nil, &domain.FlowError{Message: domain.UserMessage(err, "No se pudo iniciar el pago."), Err: err}
	}
	s.log.Info().Int("charge_id", chargeID).Str("month", month).Msg("checkout started")
	return &ports.CheckoutResult{SessionID: id, PublishableKey: s.publishableKey}, nil
}
