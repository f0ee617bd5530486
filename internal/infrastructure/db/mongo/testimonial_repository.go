package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

const collectionTestimonials = "testimonials"

type TestimonialRepository struct {
	c collection[domain.Testimonial]
}

func NewTestimonialRepository(db *mongo.Database) *TestimonialRepository {
	return &TestimonialRepository{c: newCollection[domain.Testimonial](db, collectionTestimonials, domain.ErrTestimonialNotFound)}
}

func (r *TestimonialRepository) Create(ctx context.Context, t *domain.Testimonial) error {
	return r.c.insert(ctx, t)
}

// ListByApproval filters in the query itself so unapproved entries never leave
// the database on the public path.
func (r *TestimonialRepository) ListByApproval(ctx context.Context, approved bool, page domain.Page) ([]*domain.Testimonial, int64, error) {
	return r.c.list(ctx, bson.M{"approved": approved}, page)
}

func (r *TestimonialRepository) Approve(ctx context.Context, id string, at time.Time) (*domain.Testimonial, error) {
	return r.c.update(ctx, id, bson.M{"$set": bson.M{"approved": true, "updatedAt": at}})
}
