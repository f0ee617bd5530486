package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes every repository relies on. It is
// idempotent and safe to run on each start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	newestFirst := bson.D{{Key: "createdAt", Value: -1}}
	byOwner := bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}

	indexes := map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collectionProducts: {
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "popular", Value: 1}}},
		},
		collectionOrders:        {{Keys: byOwner}, {Keys: newestFirst}},
		collectionPayments:      {{Keys: byOwner}, {Keys: bson.D{{Key: "orderId", Value: 1}}}},
		collectionReservations:  {{Keys: byOwner}, {Keys: newestFirst}},
		collectionTestimonials:  {{Keys: bson.D{{Key: "approved", Value: 1}, {Key: "createdAt", Value: -1}}}},
		collectionNotifications: {{Keys: byOwner}},
		collectionActivityLogs:  {{Keys: byOwner}, {Keys: newestFirst}},
		collectionLocations:     {{Keys: newestFirst}},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
