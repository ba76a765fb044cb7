package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartcondominium/portal/internal/core/domain"
)

// DraftStore keeps registration drafts under draft:<id>.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl}
}

// LoadDraft returns (nil, nil) for an unknown or expired draft.
func (d *DraftStore) LoadDraft(ctx context.Context, id string) (*domain.RegistrationDraft, error) {
	raw, err := d.client.Get(ctx, d.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	var draft domain.RegistrationDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, nil
	}
	return &draft, nil
}

func (d *DraftStore) SaveDraft(ctx context.Context, id string, draft *domain.RegistrationDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return d.client.Set(ctx, d.key(id), raw, d.ttl).Err()
}

func (d *DraftStore) DeleteDraft(ctx context.Context, id string) error {
	return d.client.Del(ctx, d.key(id)).Err()
}

func (d *DraftStore) key(id string) string {
	return "draft:" + id
}
