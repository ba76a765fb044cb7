package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcondominium/portal/internal/api/middleware"
	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/guard"
	"github.com/smartcondominium/portal/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	cookies     middleware.CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookies middleware.CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Redirect string           `json:"redirect"`
	Role     domain.RoleKind  `json:"role"`
	User     *domain.Identity `json:"user"`
}

type loginPage struct {
	View         string `json:"view"`
	Action       string `json:"action"`
	RegisterPath string `json:"register_path"`
}

// Page describes the login screen.
//
// @Summary      Login page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginPage
// @Success      303  "already signed in, redirected to /"
// @Router       /login [get]
func (h *AuthHandler) Page(c echo.Context) error {
	return c.JSON(http.StatusOK, loginPage{
		View:         "login",
		Action:       "/auth/login",
		RegisterPath: guard.PathRegister,
	})
}

// Login authenticates against the condominium API and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	gate, err := ctxGate(c)
	if err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), gate, req.Email, req.Password, requestMeta(c))
	if err != nil {
		return err
	}
	if err := middleware.IssueSessionCookie(c, h.cookies, res.Session.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Redirect: res.Redirect,
		Role:     res.Session.Kind,
		User:     &res.Session.Identity,
	})
}

// Logout ends the session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	gate, err := ctxGate(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), gate, requestMeta(c)); err != nil {
		return err
	}
	middleware.ClearSessionCookie(c, h.cookies)
	return c.JSON(http.StatusOK, map[string]string{"redirect": guard.PathLogin})
}
