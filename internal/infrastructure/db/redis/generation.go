package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// GenerationTracker counts requests per session and scope with INCR.
// Key format: gen:<sid>:<scope>
type GenerationTracker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGenerationTracker creates a tracker whose counters expire after ttl of
// inactivity.
func NewGenerationTracker(client *redis.Client, ttl time.Duration) *GenerationTracker {
	return &GenerationTracker{client: client, ttl: ttl}
}

// Begin opens a new generation and returns its number.
func (g *GenerationTracker) Begin(ctx context.Context, sid, scope string) (uint64, error) {
	key := g.key(sid, scope)
	var incr *redis.IntCmd
	_, err := g.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, g.ttl)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("begin generation: %w", err)
	}
	return uint64(incr.Val()), nil
}

// IsCurrent reports whether gen is still the latest generation. A vanished
// counter is treated as current.
func (g *GenerationTracker) IsCurrent(ctx context.Context, sid, scope string, gen uint64) (bool, error) {
	raw, err := g.client.Get(ctx, g.key(sid, scope)).Result()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("read generation: %w", err)
	}
	latest, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("parse generation: %w", err)
	}
	return latest == gen, nil
}

func (g *GenerationTracker) key(sid, scope string) string {
	return fmt.Sprintf("gen:%s:%s", sid, scope)
}
