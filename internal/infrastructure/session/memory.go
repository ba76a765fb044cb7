// Package session holds in-process stores used when SESSION_BACKEND=memory
// and in tests.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/ports"
)

const sweepInterval = time.Minute

type entry struct {
	value   string
	expires time.Time
}

func (e entry) live(now time.Time) bool {
	return e.expires.IsZero() || now.Before(e.expires)
}

type generation struct {
	n       uint64
	expires time.Time
}

// MemoryStore implements ports.SessionStore, ports.DraftStore and
// ports.GenerationTracker over one mutex-guarded map. Keys follow the Redis
// layout so both backends expose the same persistence contract. Expired
// entries are dropped on read and swept at most once a minute on write.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]entry
	gens      map[string]generation
	ttl       time.Duration
	draftTTL  time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryStore creates a store whose sessions and generation counters
// expire after ttl and whose registration drafts expire after draftTTL. A
// zero draftTTL falls back to ttl; a zero ttl never expires.
func NewMemoryStore(ttl, draftTTL time.Duration) *MemoryStore {
	if draftTTL <= 0 {
		draftTTL = ttl
	}
	return &MemoryStore{
		entries:  make(map[string]entry),
		gens:     make(map[string]generation),
		ttl:      ttl,
		draftTTL: draftTTL,
		now:      time.Now,
	}
}

var (
	_ ports.SessionStore      = (*MemoryStore)(nil)
	_ ports.DraftStore        = (*MemoryStore)(nil)
	_ ports.GenerationTracker = (*MemoryStore)(nil)
)

func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

// get must be called with mu held.
func (m *MemoryStore) get(key string) (string, bool) {
	e, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if !e.live(m.now()) {
		delete(m.entries, key)
		return "", false
	}
	return e.value, true
}

// put must be called with mu held.
func (m *MemoryStore) put(key, value string, ttl time.Duration) {
	now := m.now()
	m.entries[key] = entry{value: value, expires: expiry(now, ttl)}
	m.sweep(now)
}

// sweep drops expired entries and counters. It must be called with mu held.
func (m *MemoryStore) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < sweepInterval {
		return
	}
	m.lastSweep = now
	for k, e := range m.entries {
		if !e.live(now) {
			delete(m.entries, k)
		}
	}
	for k, g := range m.gens {
		if !g.expires.IsZero() && !now.Before(g.expires) {
			delete(m.gens, k)
		}
	}
}

// Len reports the number of stored entries, expired ones included until
// the next sweep.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries) + len(m.gens)
}

func sessionKey(sid, half string) string {
	return "session:" + sid + ":" + half
}

func (m *MemoryStore) Load(_ context.Context, sid string) (*domain.Session, error) {
	if sid == "" {
		return nil, nil
	}
	m.mu.Lock()
	rawIdentity, okIdentity := m.get(sessionKey(sid, ports.IdentityKey))
	token, okToken := m.get(sessionKey(sid, ports.TokenKey))
	m.mu.Unlock()

	if !okIdentity || !okToken {
		return nil, nil
	}
	identity, err := domain.DecodeIdentity([]byte(rawIdentity))
	if err != nil {
		return nil, nil
	}
	return domain.NewSession(sid, identity, token), nil
}

func (m *MemoryStore) Save(_ context.Context, sid string, identity domain.Identity, token string) error {
	if sid == "" || token == "" {
		return errors.New("save session: empty session id or token")
	}
	raw, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(sessionKey(sid, ports.IdentityKey), string(raw), m.ttl)
	m.put(sessionKey(sid, ports.TokenKey), token, m.ttl)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sessionKey(sid, ports.IdentityKey))
	delete(m.entries, sessionKey(sid, ports.TokenKey))
	return nil
}

// Put stores a raw value. Tests use it to plant partial or corrupt state.
func (m *MemoryStore) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(key, value, m.ttl)
}

func (m *MemoryStore) LoadDraft(_ context.Context, id string) (*domain.RegistrationDraft, error) {
	m.mu.Lock()
	raw, ok := m.get("draft:" + id)
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	var draft domain.RegistrationDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, nil
	}
	return &draft, nil
}

func (m *MemoryStore) SaveDraft(_ context.Context, id string, draft *domain.RegistrationDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put("draft:"+id, string(raw), m.draftTTL)
	return nil
}

func (m *MemoryStore) DeleteDraft(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, "draft:"+id)
	return nil
}

func (m *MemoryStore) Begin(_ context.Context, sid, scope string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	key := sid + ":" + scope
	g := m.gens[key]
	if !g.expires.IsZero() && !now.Before(g.expires) {
		g.n = 0
	}
	g.n++
	g.expires = expiry(now, m.ttl)
	m.gens[key] = g
	m.sweep(now)
	return g.n, nil
}

func (m *MemoryStore) IsCurrent(_ context.Context, sid, scope string, gen uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.gens[sid+":"+scope]
	if !ok || (!g.expires.IsZero() && !m.now().Before(g.expires)) {
		return true, nil
	}
	return g.n == gen, nil
}
