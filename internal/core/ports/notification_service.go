package ports

import (
	"context"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

type CreateNotificationInput struct {
	UserID  string
	Type    string
	Message string
}

type NotificationService interface {
	Create(ctx context.Context, caller domain.Caller, in CreateNotificationInput) (*domain.Notification, error)
	ListMine(ctx context.Context, caller domain.Caller, page domain.Page) (*PageResult[*domain.Notification], error)
	MarkRead(ctx context.Context, caller domain.Caller, id string) (*domain.Notification, error)
}
