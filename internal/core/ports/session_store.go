package ports

import (
	"context"

	"github.com/smartcondominium/portal/internal/core/domain"
)

// Persistence keys of the two session halves. They are suffixed to the
// session id, e.g. session:<sid>:authToken.
const (
	IdentityKey = "smartCondoUser"
	TokenKey    = "authToken"
)

// SessionStore persists the identity and token of a browser session.
type SessionStore interface {
	// Load returns (nil, nil) when either half is missing or the identity
	// does not parse. An error means the store itself failed.
	Load(ctx context.Context, sid string) (*domain.Session, error)
	// Save writes both halves so that no reader sees only one of them.
	Save(ctx context.Context, sid string, identity domain.Identity, token string) error
	// Clear removes both halves. Clearing an absent session is not an error.
	Clear(ctx context.Context, sid string) error
}

// DraftStore keeps registration wizard state between requests.
type DraftStore interface {
	LoadDraft(ctx context.Context, id string) (*domain.RegistrationDraft, error)
	SaveDraft(ctx context.Context, id string, draft *domain.RegistrationDraft) error
	DeleteDraft(ctx context.Context, id string) error
}

// GenerationTracker tags in-flight work per session and scope so that a
// response superseded by a newer request can be discarded.
type GenerationTracker interface {
	Begin(ctx context.Context, sid, scope string) (uint64, error)
	IsCurrent(ctx context.Context, sid, scope string, gen uint64) (bool, error)
}
