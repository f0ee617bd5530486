package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyTTL = 24 * time.Hour
	// a crashed request frees its key after claimTTL instead of a full day
	claimTTL      = time.Minute
	pendingMarker = "pending"
)

// IdempotencyStore implements ports.IdempotencyStore.
// Key format: idem:<scope>:<key> -> "pending" while claimed, then the resource id.
type IdempotencyStore struct {
	client   *redis.Client
	ttl      time.Duration
	claimTTL time.Duration
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL, claimTTL: claimTTL}
}

// Claim reserves key with SET NX. Losing the race returns whatever the winner
// stored: its resource id, or "" while it is still pending.
func (s *IdempotencyStore) Claim(ctx context.Context, scope, key string) (string, bool, error) {
	k := idempotencyKey(scope, key)
	ok, err := s.client.SetNX(ctx, k, pendingMarker, s.claimTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("idempotency claim: %w", err)
	}
	if ok {
		return "", true, nil
	}

	id, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// the holder released between SETNX and GET; report it as in progress
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	if id == pendingMarker {
		return "", false, nil
	}
	return id, false, nil
}

// Complete replaces the pending marker with the resource id for the full TTL.
func (s *IdempotencyStore) Complete(ctx context.Context, scope, key, resourceID string) error {
	if err := s.client.Set(ctx, idempotencyKey(scope, key), resourceID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release deletes the key, but only while it still holds the pending marker.
func (s *IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	if err := releaseScript.Run(ctx, s.client, []string{idempotencyKey(scope, key)}, pendingMarker).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func idempotencyKey(scope, key string) string {
	return fmt.Sprintf("idem:%s:%s", scope, key)
}
