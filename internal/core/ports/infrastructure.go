package ports

import (
	"context"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

// Transactor runs a primary write and its audit write as one unit when the
// store supports transactions.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	// Atomic reports whether WithinTransaction actually provides atomicity.
	Atomic() bool
}

// IdempotencyStore remembers which resource a client-supplied key produced.
// A key is claimed before the resource is written, so a retry that arrives
// while the first request is still running sees the claim.
type IdempotencyStore interface {
	// Claim reserves key. When another request holds it, claimed is false and
	// resourceID is that request's result, or empty while it is still running.
	Claim(ctx context.Context, scope, key string) (resourceID string, claimed bool, err error)
	// Complete binds a claimed key to the resource it produced.
	Complete(ctx context.Context, scope, key, resourceID string) error
	// Release drops a claim whose request failed so the client may retry.
	Release(ctx context.Context, scope, key string) error
}

// AuditOutbox retries activity entries whose first insert failed.
type AuditOutbox interface {
	Enqueue(entry domain.ActivityLog)
}

// EventPublisher announces committed activity to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, entry domain.ActivityLog)
}

// FederatedProfile is what the identity provider tells us about a user.
type FederatedProfile struct {
	Email       string
	DisplayName string
	Picture     string
	Phone       string
}

// IdentityProvider wraps the OAuth handshake with the external provider.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*FederatedProfile, error)
}

// IdentityResolver maps a verified token subject to a stored account.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID string) (*domain.User, error)
}
