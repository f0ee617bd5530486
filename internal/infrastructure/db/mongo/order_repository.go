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

const collectionOrders = "orders"

type OrderRepository struct {
	c collection[domain.Order]
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{c: newCollection[domain.Order](db, collectionOrders, domain.ErrOrderNotFound)}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	return r.c.insert(ctx, o)
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.c.findByID(ctx, id)
}

func (r *OrderRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Order, error) {
	orders, err := r.c.findMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*domain.Order, len(orders))
	for _, o := range orders {
		out[o.ID] = o
	}
	return out, nil
}

func (r *OrderRepository) List(ctx context.Context, filter ports.OwnerFilter, page domain.Page) ([]*domain.Order, int64, error) {
	return r.c.list(ctx, ownerQuery(filter), page)
}

// UpdateStatus moves the order to status only while the stored status still
// allows it. A concurrent move that got there first yields ErrInvalidTransition.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, at time.Time) (*domain.Order, error) {
	o, err := r.c.updateWhen(ctx, id, statusIn(status.EnteredFrom()), bson.M{"$set": bson.M{"status": status, "updatedAt": at}})
	if errors.Is(err, errConditionFailed) {
		return nil, fmt.Errorf("order status: %w (from %s to %s)", domain.ErrInvalidTransition, o.Status, status)
	}
	return o, err
}

// ownerQuery scopes a listing to one user; an empty filter matches everything.
func ownerQuery(filter ports.OwnerFilter) bson.M {
	if filter.UserID == "" {
		return bson.M{}
	}
	return bson.M{"userId": filter.UserID}
}
