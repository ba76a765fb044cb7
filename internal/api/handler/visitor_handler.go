package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcondominium/portal/internal/core/ports"
)

type VisitorHandler struct {
	visitors ports.VisitorService
}

func NewVisitorHandler(visitors ports.VisitorService) *VisitorHandler {
	return &VisitorHandler{visitors: visitors}
}

// List returns the visitors of the caller's active unit.
//
// @Summary      List visitors
// @Tags         visitors
// @Produce      json
// @Success      200  {object}  ports.VisitorList
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/visitors [get]
func (h *VisitorHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	list, err := h.visitors.List(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}
