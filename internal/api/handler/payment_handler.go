package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcondominium/portal/internal/core/ports"
)

type PaymentHandler struct {
	payments ports.PaymentService
}

func NewPaymentHandler(payments ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type checkoutRequest struct {
	IDPago int    `json:"id_pago" validate:"gt=0"`
	Mes    string `json:"mes" validate:"required"`
}

// Checkout starts the external checkout for one pending charge.
//
// @Summary      Start checkout
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      checkoutRequest  true  "Charge to pay"
// @Success      200   {object}  ports.CheckoutResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/payments/checkout [post]
func (h *PaymentHandler) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	res, err := h.payments.Checkout(c.Request().Context(), sess, req.IDPago, req.Mes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
