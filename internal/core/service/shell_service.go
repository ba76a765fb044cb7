package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/smartcondominium/portal/internal/api/metrics"
	"github.com/smartcondominium/portal/internal/core/dispatch"
	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/navigation"
	"github.com/smartcondominium/portal/internal/core/ports"
)

const (
	ScopeShell    = "shell"
	ScopeVisitors = "visitors"

	IconPaymentWarning = "warning"
	IconNotification   = "bell"

	msgNotificationsFailed = "No se pudieron cargar las notificaciones."
	msgUnitFailed          = "No se pudo cargar la propiedad."
)

// ShellOptions toggles optional shell behaviour.
type ShellOptions struct {
	// ForceReauthOnUnauthorized signs the user out when the API rejects the
	// session token during a render.
	ForceReauthOnUnauthorized bool
}

// ShellService composes the authenticated dashboard payload.
type ShellService struct {
	api   ports.ResidentAPI
	gens  ports.GenerationTracker
	audit ports.AuditSink
	opts  ShellOptions
	log   zerolog.Logger
}

func NewShellService(api ports.ResidentAPI, gens ports.GenerationTracker, audit ports.AuditSink, opts ShellOptions, log zerolog.Logger) *ShellService {
	return &ShellService{api: api, gens: gens, audit: audit, opts: opts, log: log}
}

var _ ports.ShellService = (*ShellService)(nil)

// Render resolves the active view, builds the menu and joins the
// independent side fetches. Fetch failures are isolated into the payload;
// only a superseded render or a forced sign-out fail the call.
func (s *ShellService) Render(ctx context.Context, req ports.ShellRequest) (*ports.Shell, error) {
	if req.Gate == nil || req.Gate.Session() == nil {
		return nil, domain.ErrSessionRequired
	}
	sess := req.Gate.Session()

	gen, err := beginGeneration(ctx, s.gens, sess.ID, ScopeShell)
	if err != nil {
		return nil, err
	}

	res := dispatch.ResolveRaw(req.View, sess.Kind)
	metrics.ViewDispatchTotal.WithLabelValues(string(sess.Kind), strconv.FormatBool(res.Fallback)).Inc()

	var (
		notes    []domain.Notification
		notesErr error
		unit     *domain.UnitAssignment
		unitErr  error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		notes, notesErr = s.api.Notifications(gctx, sess.Token)
		return nil
	})
	if !sess.IsAdmin() {
		g.Go(func() error {
			unit, unitErr = s.api.ActiveUnit(gctx, sess.Token, sess.Identity.Codigo)
			return nil
		})
	}
	_ = g.Wait()

	if s.opts.ForceReauthOnUnauthorized && (domain.IsUnauthorized(notesErr) || domain.IsUnauthorized(unitErr)) {
		return nil, s.forceReauth(ctx, req, sess)
	}

	if err := checkGeneration(ctx, s.gens, sess.ID, ScopeShell, gen); err != nil {
		return nil, err
	}

	shell := &ports.Shell{
		Role:          sess.Kind,
		Title:         res.Title,
		ActiveView:    res.Key,
		View:          res,
		Menu:          navigation.Build(sess.Kind, res.Key, req.Expanded),
		Expanded:      req.Expanded.Encode(),
		Header:        header(sess),
		Notifications: s.panel(notes, notesErr),
	}
	if !sess.IsAdmin() {
		if unitErr != nil {
			metrics.PanelFetchErrorsTotal.WithLabelValues("unit").Inc()
			s.log.Warn().Err(unitErr).Str("session_id", sess.ID).Msg("unit fetch failed")
			shell.Header.UnitError = unitMessage(unitErr)
		} else if unit != nil {
			code := unit.CodigoPropiedad
			shell.Header.Unit = &code
		}
	}
	return shell, nil
}

func (s *ShellService) panel(notes []domain.Notification, err error) ports.NotificationPanel {
	if err != nil {
		metrics.PanelFetchErrorsTotal.WithLabelValues("notifications").Inc()
		s.log.Warn().Err(err).Msg("notification fetch failed")
		return ports.NotificationPanel{Items: []ports.NotificationItem{}, Error: msgNotificationsFailed}
	}
	items := make([]ports.NotificationItem, 0, len(notes))
	for _, n := range notes {
		icon := IconNotification
		if n.IsPaymentReminder() {
			icon = IconPaymentWarning
		}
		items = append(items, ports.NotificationItem{Notification: n, Icon: icon})
	}
	return ports.NotificationPanel{Count: len(items), Items: items}
}

func (s *ShellService) forceReauth(ctx context.Context, req ports.ShellRequest, sess *domain.Session) error {
	if err := req.Gate.Logout(ctx); err != nil {
		return fmt.Errorf("forced sign-out: %w", err)
	}
	metrics.LogoutsTotal.WithLabelValues("unauthorized").Inc()
	if s.audit != nil {
		s.audit.Record(domain.AuditEvent{
			Kind:      domain.AuditForcedReauth,
			Subject:   sess.Identity.Correo,
			UserCode:  string(sess.Identity.Codigo),
			RoleKind:  sess.Kind,
			SessionID: sess.ID,
			IP:        req.Meta.IP,
			UserAgent: req.Meta.UserAgent,
			At:        time.Now().UTC(),
		})
	}
	s.log.Info().Str("session_id", sess.ID).Msg("session token rejected by backend, signed out")
	return domain.ErrSessionExpired
}

func header(sess *domain.Session) ports.Header {
	return ports.Header{
		Name:          sess.Identity.DisplayName(),
		AvatarInitial: sess.Identity.AvatarInitial(),
		PhotoURL:      sess.Identity.URLImg,
	}
}

func unitMessage(err error) string {
	if errors.Is(err, domain.ErrNoActiveUnit) {
		return domain.ErrNoActiveUnit.Error()
	}
	return domain.UserMessage(err, msgUnitFailed)
}

// beginGeneration is a no-op without a tracker.
func beginGeneration(ctx context.Context, gens ports.GenerationTracker, sid, scope string) (uint64, error) {
	if gens == nil {
		return 0, nil
	}
	gen, err := gens.Begin(ctx, sid, scope)
	if err != nil {
		return 0, fmt.Errorf("begin %s: %w", scope, err)
	}
	return gen, nil
}

func checkGeneration(ctx context.Context, gens ports.GenerationTracker, sid, scope string, gen uint64) error {
	if gens == nil {
		return nil
	}
	ok, err := gens.IsCurrent(ctx, sid, scope, gen)
	if err != nil {
		return fmt.Errorf("check %s: %w", scope, err)
	}
	if !ok {
		metrics.SupersededTotal.WithLabelValues(scope).Inc()
		return fmt.Errorf("%s: %w", scope, domain.ErrSuperseded)
	}
	return nil
}
