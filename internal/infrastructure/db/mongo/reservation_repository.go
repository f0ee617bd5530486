package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

const collectionReservations = "reservations"

type ReservationRepository struct {
	c collection[domain.Reservation]
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{c: newCollection[domain.Reservation](db, collectionReservations, domain.ErrReservationNotFound)}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	return r.c.insert(ctx, res)
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	return r.c.findByID(ctx, id)
}

func (r *ReservationRepository) List(ctx context.Context, filter ports.OwnerFilter, page domain.Page) ([]*domain.Reservation, int64, error) {
	return r.c.list(ctx, ownerQuery(filter), page)
}

// UpdateStatus moves the reservation to status only while the stored status still
// allows it. A concurrent move that got there first yields ErrInvalidTransition.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus, at time.Time) (*domain.Reservation, error) {
	res, err := r.c.updateWhen(ctx, id, statusIn(status.EnteredFrom()), bson.M{"$set": bson.M{"status": status, "updatedAt": at}})
	if errors.Is(err, errConditionFailed) {
		return nil, fmt.Errorf("reservation status: %w (from %s to %s)", domain.ErrInvalidTransition, res.Status, status)
	}
	return res, err
}
