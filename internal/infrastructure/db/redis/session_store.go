package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/ports"
)

// SessionStore keeps both session halves under
// session:<sid>:smartCondoUser and session:<sid>:authToken.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewSessionStore wraps client. Entries expire after ttl.
func NewSessionStore(client *redis.Client, ttl time.Duration, log zerolog.Logger) *SessionStore {
	return &SessionStore{client: client, ttl: ttl, log: log}
}

var _ ports.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) Load(ctx context.Context, sid string) (*domain.Session, error) {
	if sid == "" {
		return nil, nil
	}
	vals, err := s.client.MGet(ctx, sessionKey(sid, ports.IdentityKey), sessionKey(sid, ports.TokenKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	rawIdentity, okIdentity := vals[0].(string)
	token, okToken := vals[1].(string)
	if !okIdentity || !okToken {
		return nil, nil
	}

	identity, err := domain.DecodeIdentity([]byte(rawIdentity))
	if err != nil {
		s.log.Warn().Err(err).Str("session_id", sid).Msg("discarding unparsable session identity")
		return nil, nil
	}
	return domain.NewSession(sid, identity, token), nil
}

func (s *SessionStore) Save(ctx context.Context, sid string, identity domain.Identity, token string) error {
	if sid == "" || token == "" {
		return errors.New("save session: empty session id or token")
	}
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(sid, ports.IdentityKey), raw, s.ttl)
		pipe.Set(ctx, sessionKey(sid, ports.TokenKey), token, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.client.Del(ctx, sessionKey(sid, ports.IdentityKey), sessionKey(sid, ports.TokenKey)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
