package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcondominium/portal/internal/core/navigation"
	"github.com/smartcondominium/portal/internal/core/ports"
)

// ShellHandler serves the authenticated dashboard.
type ShellHandler struct {
	shells ports.ShellService
}

func NewShellHandler(shells ports.ShellService) *ShellHandler {
	return &ShellHandler{shells: shells}
}

// Dashboard renders the shell for the active view. The expansion state
// travels in `expanded` (comma separated parent keys); `toggle` flips one
// parent before rendering.
//
// @Summary      Dashboard shell
// @Tags         dashboard
// @Produce      json
// @Param        view      path      string  false  "Active view key"
// @Param        expanded  query     string  false  "Expanded parent keys, comma separated"
// @Param        toggle    query     string  false  "Parent key to toggle"
// @Success      200       {object}  ports.Shell
// @Success      303       "not signed in, redirected to /login"
// @Failure      401       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /dashboard/{view} [get]
func (h *ShellHandler) Dashboard(c echo.Context) error {
	gate, err := ctxGate(c)
	if err != nil {
		return err
	}

	view := c.Param("view")
	if view == "" {
		view = c.QueryParam("view")
	}
	expanded := navigation.ParseExpansion(c.QueryParam("expanded"))
	if t := c.QueryParam("toggle"); t != "" {
		expanded.Toggle(t)
	}

	shell, err := h.shells.Render(c.Request().Context(), ports.ShellRequest{
		Gate:     gate,
		View:     view,
		Expanded: expanded,
		Meta:     requestMeta(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shell)
}
