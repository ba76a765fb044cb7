package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/ports"
)

const (
	pathLogin    = "/api/auth/login/"
	pathRegister = "/api/auth/register/"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.LoginResponse, error) {
	var out ports.LoginResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   pathLogin,
		body:   loginRequest{Email: email, Password: password},
	}, &out)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Token) == "" || out.User == nil {
		return nil, fmt.Errorf("%w: login response without token or user", domain.ErrBackendUnavailable)
	}
	return &out, nil
}

// Register creates an account. It never authenticates.
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	return c.do(ctx, call{
		method: http.MethodPost,
		path:   pathRegister,
		body:   reg,
	}, nil)
}
