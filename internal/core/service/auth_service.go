package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartcondominium/portal/internal/api/metrics"
	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/guard"
	"github.com/smartcondominium/portal/internal/core/ports"
)

// AuthService implements login and logout against the condominium API.
type AuthService struct {
	api   ports.AuthAPI
	store ports.SessionStore
	audit ports.AuditSink
	log   zerolog.Logger
	newID func() string
	now   func() time.Time
}

func NewAuthService(api ports.AuthAPI, store ports.SessionStore, audit ports.AuditSink, log zerolog.Logger) *AuthService {
	return &AuthService{
		api:   api,
		store: store,
		audit: audit,
		log:   log,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

var _ ports.AuthService = (*AuthService)(nil)

// Login forwards the credentials. Only a successful answer touches the
// session store; the gate becomes Authenticated after the save.
func (s *AuthService) Login(ctx context.Context, gate ports.Gate, email, password string, meta ports.RequestMeta) (*ports.LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, &domain.FlowError{Message: "Ingrese su correo y contraseña.", Err: domain.ErrValidation}
	}

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		result := "error"
		var re *domain.RemoteError
		if errors.As(err, &re) {
			result = "rejected"
		}
		metrics.LoginsTotal.WithLabelValues(result).Inc()
		s.record(domain.AuditEvent{Kind: domain.AuditLoginFailed, Subject: email, Reason: err.Error()}, meta)
		s.log.Info().Err(err).Str("email", email).Msg("login failed")
		return nil, &domain.FlowError{Message: domain.UserMessage(err, domain.MsgLoginFailed), Err: err}
	}

	sid := s.newID()
	if err := s.store.Save(ctx, sid, *resp.User, resp.Token); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}
	sess := domain.NewSession(sid, resp.User, resp.Token)
	if err := gate.Login(sid, sess); err != nil {
		_ = s.store.Clear(ctx, sid)
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.record(domain.AuditEvent{
		Kind:      domain.AuditLogin,
		Subject:   email,
		UserCode:  string(sess.Identity.Codigo),
		RoleKind:  sess.Kind,
		SessionID: sid,
	}, meta)
	s.log.Info().Str("session_id", sid).Str("role", string(sess.Kind)).Msg("login succeeded")

	return &ports.LoginResult{Session: sess, Redirect: guard.PathRoot}, nil
}

// Logout clears the store through the gate.
func (s *AuthService) Logout(ctx context.Context, gate ports.Gate, meta ports.RequestMeta) error {
	sess := gate.Session()
	if sess == nil {
		return domain.ErrSessionRequired
	}
	if err := gate.Logout(ctx); err != nil {
		return err
	}
	metrics.LogoutsTotal.WithLabelValues("user").Inc()
	s.record(domain.AuditEvent{
		Kind:      domain.AuditLogout,
		Subject:   sess.Identity.Correo,
		UserCode:  string(sess.Identity.Codigo),
		RoleKind:  sess.Kind,
		SessionID: sess.ID,
	}, meta)
	return nil
}

func (s *AuthService) record(e domain.AuditEvent, meta ports.RequestMeta) {
	if s.audit == nil {
		return
	}
	e.IP = meta.IP
	e.UserAgent = meta.UserAgent
	e.At = s.now().UTC()
	s.audit.Record(e)
}
