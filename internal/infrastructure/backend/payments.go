package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/smartcondominium/portal/internal/core/domain"
)

const pathCheckout = "/api/pagar-cuota/"

type checkoutRequest struct {
	IDPago int    `json:"id_pago"`
	Mes    string `json:"mes"`
}

type checkoutResponse struct {
	SessionID string `json:"sessionId"`
}

// StartCheckout asks the API to open a checkout session for a charge.
func (c *Client) StartCheckout(ctx context.Context, token string, chargeID int, month string) (string, error) {
	var out checkoutResponse
	if err := c.do(ctx, call{
		method:        http.MethodPost,
		path:          pathCheckout,
		token:         token,
		authenticated: true,
		body:          checkoutRequest{IDPago: chargeID, Mes: month},
	}, &out); err != nil {
		return "", err
	}
	if out.SessionID == "" {
		return "", fmt.Errorf("%w: checkout response without session id", domain.ErrBackendUnavailable)
	}
	return out.SessionID, nil
}
