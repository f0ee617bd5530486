package ports

import (
	"context"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

// ActivityLogService is read-only; entries are written by the other services.
type ActivityLogService interface {
	ListMine(ctx context.Context, caller domain.Caller, page domain.Page) (*PageResult[ActivityLogView], error)
	ListAll(ctx context.Context, caller domain.Caller, page domain.Page) (*PageResult[ActivityLogView], error)
}
