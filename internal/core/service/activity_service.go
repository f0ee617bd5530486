package service

import (
	"context"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

type ActivityLogService struct {
	logs  ports.ActivityLogRepository
	users ports.UserRepository
}

func NewActivityLogService(logs ports.ActivityLogRepository, users ports.UserRepository) *ActivityLogService {
	return &ActivityLogService{logs: logs, users: users}
}

func (s *ActivityLogService) ListMine(ctx context.Context, caller domain.Caller, page domain.Page) (*ports.PageResult[ports.ActivityLogView], error) {
	entries, total, err := s.logs.List(ctx, ports.OwnerFilter{UserID: caller.UserID}, page)
	if err != nil {
		return nil, err
	}
	views := make([]ports.ActivityLogView, 0, len(entries))
	for _, e := range entries {
		views = append(views, ports.ActivityLogView{Entry: e})
	}
	return ports.NewPageResult(views, total, page), nil
}

func (s *ActivityLogService) ListAll(ctx context.Context, caller domain.Caller, page domain.Page) (*ports.PageResult[ports.ActivityLogView], error) {
	if err := caller.Authorize(domain.RequireRole(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	entries, total, err := s.logs.List(ctx, ports.OwnerFilter{}, page)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.UserID)
	}
	owners, err := ownerSummaries(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ports.ActivityLogView, 0, len(entries))
	for _, e := range entries {
		views = append(views, ports.ActivityLogView{Entry: e, Owner: owners[e.UserID]})
	}
	return ports.NewPageResult(views, total, page), nil
}
