package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smartcondominium/portal/internal/core/visitorpass"
)

// PagesHandler serves the standalone pages that live outside the shell.
type PagesHandler struct {
	passZone *time.Location
	now      func() time.Time
}

func NewPagesHandler(passZone *time.Location) *PagesHandler {
	if passZone == nil {
		passZone = time.Local
	}
	return &PagesHandler{passZone: passZone, now: time.Now}
}

type paymentResultPage struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	BackLabel string `json:"back_label"`
	BackPath  string `json:"back_path"`
}

// PaymentResult is where the checkout returns after a successful payment.
//
// @Summary      Payment result
// @Tags         pages
// @Produce      json
// @Success      200  {object}  paymentResultPage
// @Success      303  "not signed in, redirected to /login"
// @Router       /pago-exitoso [get]
func (h *PagesHandler) PaymentResult(c echo.Context) error {
	return c.JSON(http.StatusOK, paymentResultPage{
		Title:     "¡Pago Realizado con Éxito!",
		Message:   "Gracias por tu pago. La transacción ha sido procesada correctamente. En unos momentos verás el cambio reflejado en tu estado de cuenta.",
		BackLabel: "Volver al Estado de Cuenta",
		BackPath:  "/dashboard/cuenta",
	})
}

// VisitorPass verifies the pass in the `data` query parameter. It is
// public: guards at the gate open it without a session.
//
// @Summary      Visitor pass verification
// @Tags         pages
// @Produce      json
// @Param        data  query     string  true  "Base64 encoded pass"
// @Success      200   {object}  visitorpass.Verification
// @Failure      400   {object}  visitorpass.Verification
// @Router       /pase-visitante [get]
func (h *PagesHandler) VisitorPass(c echo.Context) error {
	v := visitorpass.Verify(c.QueryParam("data"), h.now(), h.passZone)
	if v.Error != "" {
		return c.JSON(http.StatusBadRequest, v)
	}
	return c.JSON(http.StatusOK, v)
}
