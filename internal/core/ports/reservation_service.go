package ports

import (
	"context"
	"time"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

type CreateReservationInput struct {
	Date   time.Time
	Time   string
	People int
	Notes  string
}

type ReservationService interface {
	Create(ctx context.Context, caller domain.Caller, in CreateReservationInput) (*domain.Reservation, error)
	ListMine(ctx context.Context, caller domain.Caller, page domain.Page) (*PageResult[ReservationView], error)
	Get(ctx context.Context, caller domain.Caller, id string) (*ReservationView, error)
	ListAll(ctx context.Context, caller domain.Caller, page domain.Page) (*PageResult[ReservationView], error)
	SetStatus(ctx context.Context, caller domain.Caller, id string, status domain.ReservationStatus) (*domain.Reservation, error)
}
