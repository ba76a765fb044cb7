// Package guard decides, per request, whether the caller sees the
// dashboard, the auth pages or a standalone page.
package guard

import (
	"context"
	"fmt"

	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/ports"
)

// State is the authentication state of one browser session.
type State string

const (
	Loading         State = "loading"
	Unauthenticated State = "unauthenticated"
	Authenticated   State = "authenticated"
)

var validTransitions = map[State][]State{
	Loading:         {Unauthenticated, Authenticated},
	Unauthenticated: {Authenticated},
	Authenticated:   {Unauthenticated},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s State) CanTransitionTo(next State) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Guard tracks the state of one session id against the session store.
// Exactly one state holds at any time, and Authenticated always carries the
// session that the store returned or was just given.
type Guard struct {
	store   ports.SessionStore
	sid     string
	state   State
	session *domain.Session
}

// New returns a guard in the Loading state.
func New(store ports.SessionStore, sid string) *Guard {
	return &Guard{store: store, sid: sid, state: Loading}
}

func (g *Guard) State() State { return g.state }

func (g *Guard) SessionID() string { return g.sid }

// Session is non-nil only while Authenticated.
func (g *Guard) Session() *domain.Session {
	if g.state != Authenticated {
		return nil
	}
	return g.session
}

// Restore reads the store once. A store failure leaves the guard Loading.
func (g *Guard) Restore(ctx context.Context) error {
	if g.state != Loading {
		return fmt.Errorf("restore from %s: %w", g.state, domain.ErrInvalidTransition)
	}
	if g.sid == "" {
		g.state = Unauthenticated
		return nil
	}
	sess, err := g.store.Load(ctx, g.sid)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if sess == nil {
		g.state = Unauthenticated
		return nil
	}
	g.session = sess
	g.state = Authenticated
	return nil
}

// Login moves Unauthenticated → Authenticated. sess must already be saved
// under sid by the auth flow.
func (g *Guard) Login(sid string, sess *domain.Session) error {
	if !g.state.CanTransitionTo(Authenticated) || g.state == Loading {
		return fmt.Errorf("login from %s: %w", g.state, domain.ErrInvalidTransition)
	}
	if sess == nil {
		return fmt.Errorf("login without session: %w", domain.ErrInvalidTransition)
	}
	g.sid = sid
	g.session = sess
	g.state = Authenticated
	return nil
}

// Logout clears the store first and only then flips to Unauthenticated, so
// no later read can observe a stale session.
func (g *Guard) Logout(ctx context.Context) error {
	if g.state != Authenticated {
		return fmt.Errorf("logout from %s: %w", g.state, domain.ErrInvalidTransition)
	}
	if err := g.store.Clear(ctx, g.sid); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	g.session = nil
	g.state = Unauthenticated
	return nil
}
