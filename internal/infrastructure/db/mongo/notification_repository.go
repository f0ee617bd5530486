package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

const collectionNotifications = "notifications"

type NotificationRepository struct {
	c collection[domain.Notification]
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{c: newCollection[domain.Notification](db, collectionNotifications, domain.ErrNotificationNotFound)}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return r.c.insert(ctx, n)
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*domain.Notification, error) {
	return r.c.findByID(ctx, id)
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, page domain.Page) ([]*domain.Notification, int64, error) {
	return r.c.list(ctx, bson.M{"userId": userID}, page)
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) (*domain.Notification, error) {
	return r.c.update(ctx, id, bson.M{"$set": bson.M{"read": true}})
}
