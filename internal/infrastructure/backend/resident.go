package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/smartcondominium/portal/internal/core/domain"
)

const (
	pathNotifications = "/api/mis-notificaciones/"
	pathUnits         = "/api/pertenece/"
	pathVisitors      = "/api/lista-visitantes/"
)

// Notifications lists the caller's notifications.
func (c *Client) Notifications(ctx context.Context, token string) ([]domain.Notification, error) {
	var out page[domain.Notification]
	if err := c.do(ctx, call{
		method:        http.MethodGet,
		path:          pathNotifications,
		token:         token,
		authenticated: true,
	}, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// ActiveUnit returns the first active unit assignment of user.
func (c *Client) ActiveUnit(ctx context.Context, token string, user domain.UserCode) (*domain.UnitAssignment, error) {
	q := url.Values{}
	q.Set("codigo_usuario", string(user))
	q.Set("activas", "true")

	var out page[domain.UnitAssignment]
	if err := c.do(ctx, call{
		method:        http.MethodGet,
		path:          pathUnits,
		query:         q,
		token:         token,
		authenticated: true,
	}, &out); err != nil {
		return nil, err
	}
	if len(out.Results) == 0 {
		return nil, domain.ErrNoActiveUnit
	}
	unit := out.Results[0]
	return &unit, nil
}

// Visitors lists the visitors registered for unit.
func (c *Client) Visitors(ctx context.Context, token string, unit int) ([]domain.Visitor, error) {
	q := url.Values{}
	q.Set("codigo_propiedad", strconv.Itoa(unit))

	var out page[domain.Visitor]
	if err := c.do(ctx, call{
		method:        http.MethodGet,
		path:          pathVisitors,
		query:         q,
		token:         token,
		authenticated: true,
	}, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}
