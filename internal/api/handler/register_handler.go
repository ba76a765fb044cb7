package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcondominium/portal/internal/api/middleware"
	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/ports"
)

type RegisterHandler struct {
	service ports.RegistrationService
	cookies middleware.CookieConfig
}

func NewRegisterHandler(service ports.RegistrationService, cookies middleware.CookieConfig) *RegisterHandler {
	return &RegisterHandler{service: service, cookies: cookies}
}

type stepRequest struct {
	Action ports.WizardAction  `json:"action" validate:"required,oneof=next back submit"`
	Data   domain.Registration `json:"data" validate:"-"`
}

// State returns the caller's registration wizard.
//
// @Summary      Registration wizard state
// @Tags         register
// @Produce      json
// @Success      200  {object}  ports.WizardResult
// @Router       /register [get]
func (h *RegisterHandler) State(c echo.Context) error {
	id, err := middleware.DraftID(c, h.cookies)
	if err != nil {
		return err
	}
	res, err := h.service.State(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Step runs one wizard command: next, back or submit.
//
// @Summary      Registration wizard step
// @Tags         register
// @Accept       json
// @Produce      json
// @Param        body  body      stepRequest  true  "Wizard command and the current step's fields"
// @Success      200   {object}  ports.WizardResult
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  ports.WizardResult
// @Router       /register/step [post]
func (h *RegisterHandler) Step(c echo.Context) error {
	var req stepRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := middleware.DraftID(c, h.cookies)
	if err != nil {
		return err
	}
	res, err := h.service.Apply(c.Request().Context(), id, req.Action, req.Data, requestMeta(c))
	if err != nil {
		return err
	}
	if res.Completed {
		middleware.ClearDraftCookie(c, h.cookies)
	}
	if res.Error != "" {
		return c.JSON(http.StatusUnprocessableEntity, res)
	}
	return c.JSON(http.StatusOK, res)
}
