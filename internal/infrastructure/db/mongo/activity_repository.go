package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

const collectionActivityLogs = "activity_logs"

// ActivityLogRepository persists the audit trail. It exposes no update or
// delete path.
type ActivityLogRepository struct {
	c collection[domain.ActivityLog]
}

func NewActivityLogRepository(db *mongo.Database) *ActivityLogRepository {
	return &ActivityLogRepository{c: newCollection[domain.ActivityLog](db, collectionActivityLogs, domain.ErrNotFound)}
}

// Append inserts the entry. Re-appending an entry that the outbox already
// delivered is treated as success.
func (r *ActivityLogRepository) Append(ctx context.Context, entry *domain.ActivityLog) error {
	if err := r.c.insert(ctx, entry); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

func (r *ActivityLogRepository) List(ctx context.Context, filter ports.OwnerFilter, page domain.Page) ([]*domain.ActivityLog, int64, error) {
	return r.c.list(ctx, ownerQuery(filter), page)
}
