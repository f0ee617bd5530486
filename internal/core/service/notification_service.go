package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

type NotificationService struct {
	notifications ports.NotificationRepository
	users         ports.UserRepository
	logger        zerolog.Logger
}

func NewNotificationService(notifications ports.NotificationRepository, users ports.UserRepository, logger zerolog.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, users: users, logger: logger}
}

// Create sends an unread notification to an existing user. Admin only.
func (s *NotificationService) Create(ctx context.Context, caller domain.Caller, in ports.CreateNotificationInput) (*domain.Notification, error) {
	if err := caller.Authorize(domain.RequireRole(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	if in.UserID == "" {
		return nil, domain.Invalidf("userId is required")
	}
	if strings.TrimSpace(in.Type) == "" {
		return nil, domain.Invalidf("type is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, domain.Invalidf("message is required")
	}
	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	n := &domain.Notification{
		ID:        domain.NewID(),
		UserID:    in.UserID,
		Type:      strings.TrimSpace(in.Type),
		Message:   strings.TrimSpace(in.Message),
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}

	s.logger.Info().Str("notification_id", n.ID).Str("user_id", n.UserID).Msg("notification created")
	return n, nil
}

func (s *NotificationService) ListMine(ctx context.Context, caller domain.Caller, page domain.Page) (*ports.PageResult[*domain.Notification], error) {
	items, total, err := s.notifications.ListByUser(ctx, caller.UserID, page)
	if err != nil {
		return nil, err
	}
	return ports.NewPageResult(items, total, page), nil
}

// MarkRead flags the caller's own notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, caller domain.Caller, id string) (*domain.Notification, error) {
	n, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := caller.Authorize(domain.OwnerOf(n.UserID)); err != nil {
		return nil, err
	}
	if n.Read {
		return n, nil
	}
	return s.notifications.MarkRead(ctx, id)
}
