package ports

import (
	"context"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

type CreatePaymentInput struct {
	OrderID        string
	Amount         float64
	Method         domain.PaymentMethod
	IdempotencyKey string
}

type PaymentResult struct {
	Payment  *domain.Payment
	Replayed bool
}

type PaymentService interface {
	Create(ctx context.Context, caller domain.Caller, in CreatePaymentInput) (*PaymentResult, error)
	ListMine(ctx context.Context, caller domain.Caller, page domain.Page) (*PageResult[PaymentView], error)
	ListAll(ctx context.Context, caller domain.Caller, page domain.Page) (*PageResult[PaymentView], error)
	SetStatus(ctx context.Context, caller domain.Caller, id string, status domain.PaymentStatus, transactionID string) (*domain.Payment, error)
}
