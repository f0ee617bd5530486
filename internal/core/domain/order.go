package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

var orderTransitions = transitions[OrderStatus]{
	OrderPending: {OrderDelivered, OrderCancelled},
}

func (s OrderStatus) Valid() bool { return orderTransitions.known(s) }

// CanTransitionTo reports whether an order in status s may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return orderTransitions.allows(s, next)
}

// EnteredFrom lists the stored statuses an order may hold for a move to s.
func (s OrderStatus) EnteredFrom() []OrderStatus { return orderTransitions.sources(s) }

// OrderItem snapshots the unit price at order time so later menu changes do not
// alter past orders.
type OrderItem struct {
	ProductID string  `json:"productId" bson:"productId"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return Money(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID        string      `json:"id" bson:"_id"`
	UserID    string      `json:"userId" bson:"userId"`
	Items     []OrderItem `json:"items" bson:"items"`
	Total     float64     `json:"total" bson:"total"`
	Status    OrderStatus `json:"status" bson:"status"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// OrderTotal sums the line subtotals.
func OrderTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total.Round(2)
}

// ProductIDs returns the distinct product ids referenced by the order.
func (o *Order) ProductIDs() []string {
	seen := make(map[string]struct{}, len(o.Items))
	ids := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}
