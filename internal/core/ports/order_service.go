package ports

import (
	"context"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

type OrderItemInput struct {
	ProductID string
	Quantity  int
	Price     float64
}

// CreateOrderInput carries a new order. Total is optional; when set it must match
// the sum of the line items.
type CreateOrderInput struct {
	Items          []OrderItemInput
	Total          *float64
	IdempotencyKey string
}

// OrderResult wraps the stored order. Replayed is true when the Idempotency-Key
// matched an order created earlier.
type OrderResult struct {
	Order    *domain.Order
	Replayed bool
}

type OrderService interface {
	Create(ctx context.Context, caller domain.Caller, in CreateOrderInput) (*OrderResult, error)
	ListMine(ctx context.Context, caller domain.Caller, page domain.Page) (*PageResult[OrderView], error)
	Get(ctx context.Context, caller domain.Caller, id string) (*OrderView, error)
	ListAll(ctx context.Context, caller domain.Caller, page domain.Page) (*PageResult[OrderView], error)
	SetStatus(ctx context.Context, caller domain.Caller, id string, status domain.OrderStatus) (*domain.Order, error)
}
