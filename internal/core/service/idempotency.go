package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

// scopedKey prefixes a client key with the owners it is scoped to. An empty key
// stays empty so no claim is made.
func scopedKey(key string, scope ...string) string {
	if key == "" {
		return ""
	}
	return strings.Join(append(scope, key), ":")
}

// keyClaim is an Idempotency-Key held by the running request.
type keyClaim struct {
	store  ports.IdempotencyStore
	scope  string
	key    string
	held   bool
	logger zerolog.Logger
}

// claimKey reserves key before anything is written. It returns the id of the
// resource an earlier request produced, or ErrRequestInProgress while that
// request is still running. A store outage degrades to creating without a key.
func claimKey(ctx context.Context, store ports.IdempotencyStore, scope, key string, logger zerolog.Logger) (*keyClaim, string, error) {
	c := &keyClaim{store: store, scope: scope, key: key, logger: logger}
	if store == nil || key == "" {
		return c, "", nil
	}

	existing, claimed, err := store.Claim(ctx, scope, key)
	switch {
	case err != nil:
		logger.Warn().Err(err).Str("scope", scope).Msg("idempotency claim failed, creating anyway")
		return c, "", nil
	case claimed:
		c.held = true
		return c, "", nil
	case existing == "":
		return nil, "", domain.ErrRequestInProgress
	default:
		return c, existing, nil
	}
}

func (c *keyClaim) complete(ctx context.Context, resourceID string) {
	if !c.held {
		return
	}
	c.held = false
	if err := c.store.Complete(ctx, c.scope, c.key, resourceID); err != nil {
		c.logger.Warn().Err(err).Str("resource_id", resourceID).Msg("failed to store idempotency key")
	}
}

// release frees a key whose request did not complete. Safe to defer.
func (c *keyClaim) release(ctx context.Context) {
	if !c.held {
		return
	}
	c.held = false
	if err := c.store.Release(context.WithoutCancel(ctx), c.scope, c.key); err != nil {
		c.logger.Warn().Err(err).Str("scope", c.scope).Msg("failed to release idempotency key")
	}
}
