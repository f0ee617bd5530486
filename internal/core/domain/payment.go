package domain

import "time"

type PaymentMethod string

const (
	MethodCash PaymentMethod = "cash"
	MethodCard PaymentMethod = "card"
	MethodYape PaymentMethod = "yape"
	MethodPlin PaymentMethod = "plin"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodYape, MethodPlin:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// A failed payment may be retried; a completed one is final.
var paymentTransitions = transitions[PaymentStatus]{
	PaymentPending: {PaymentCompleted, PaymentFailed},
	PaymentFailed:  {PaymentPending},
}

func (s PaymentStatus) Valid() bool { return paymentTransitions.known(s) }

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return paymentTransitions.allows(s, next)
}

func (s PaymentStatus) EnteredFrom() []PaymentStatus { return paymentTransitions.sources(s) }

type Payment struct {
	ID            string        `json:"id" bson:"_id"`
	OrderID       string        `json:"orderId" bson:"orderId"`
	UserID        string        `json:"userId" bson:"userId"`
	Amount        float64       `json:"amount" bson:"amount"`
	Method        PaymentMethod `json:"method" bson:"method"`
	Status        PaymentStatus `json:"status" bson:"status"`
	TransactionID string        `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt" bson:"updatedAt"`
}
