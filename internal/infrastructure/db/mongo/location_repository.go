package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

const collectionLocations = "locations"

type LocationRepository struct {
	c collection[domain.Location]
}

func NewLocationRepository(db *mongo.Database) *LocationRepository {
	return &LocationRepository{c: newCollection[domain.Location](db, collectionLocations, domain.ErrLocationNotFound)}
}

func (r *LocationRepository) Create(ctx context.Context, l *domain.Location) error {
	return r.c.insert(ctx, l)
}

func (r *LocationRepository) FindByID(ctx context.Context, id string) (*domain.Location, error) {
	return r.c.findByID(ctx, id)
}

func (r *LocationRepository) List(ctx context.Context, page domain.Page) ([]*domain.Location, int64, error) {
	return r.c.list(ctx, bson.M{}, page)
}

func (r *LocationRepository) Update(ctx context.Context, l *domain.Location) error {
	return r.c.replace(ctx, l.ID, l)
}

func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, id)
}
