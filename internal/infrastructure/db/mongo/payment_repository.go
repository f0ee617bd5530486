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

const collectionPayments = "payments"

type PaymentRepository struct {
	c collection[domain.Payment]
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{c: newCollection[domain.Payment](db, collectionPayments, domain.ErrPaymentNotFound)}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.c.insert(ctx, p)
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	return r.c.findByID(ctx, id)
}

func (r *PaymentRepository) List(ctx context.Context, filter ports.OwnerFilter, page domain.Page) ([]*domain.Payment, int64, error) {
	return r.c.list(ctx, ownerQuery(filter), page)
}

// UpdateStatus sets the status and, when given, the gateway transaction id.
// The write only applies while the stored status still allows the move.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus, transactionID string, at time.Time) (*domain.Payment, error) {
	set := bson.M{"status": status, "updatedAt": at}
	if transactionID != "" {
		set["transactionId"] = transactionID
	}
	p, err := r.c.updateWhen(ctx, id, statusIn(status.EnteredFrom()), bson.M{"$set": set})
	if errors.Is(err, errConditionFailed) {
		return nil, fmt.Errorf("payment status: %w (from %s to %s)", domain.ErrInvalidTransition, p.Status, status)
	}
	return p, err
}
