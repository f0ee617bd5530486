package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chickensystem/restaurant-api/internal/api/metrics"
	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

type ReservationService struct {
	reservations ports.ReservationRepository
	users        ports.UserRepository
	audit        *AuditTrail
	logger       zerolog.Logger
}

func NewReservationService(
	reservations ports.ReservationRepository,
	users ports.UserRepository,
	audit *AuditTrail,
	logger zerolog.Logger,
) *ReservationService {
	return &ReservationService{reservations: reservations, users: users, audit: audit, logger: logger}
}

func (s *ReservationService) Create(ctx context.Context, caller domain.Caller, in ports.CreateReservationInput) (*domain.Reservation, error) {
	if in.Date.IsZero() {
		return nil, domain.Invalidf("date is required")
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		return nil, domain.Invalidf("time must use the HH:MM format")
	}
	if in.People < 1 {
		return nil, domain.Invalidf("people must be at least 1")
	}

	now := time.Now().UTC()
	d := in.Date.UTC()
	r := &domain.Reservation{
		ID:        domain.NewID(),
		UserID:    caller.UserID,
		Date:      time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
		Time:      in.Time,
		People:    in.People,
		Status:    domain.ReservationConfirmed,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.audit.Mutate(ctx,
		func(ctx context.Context) error { return s.reservations.Create(ctx, r) },
		func() domain.ActivityLog { return domain.ReservationCreatedActivity(r, now) },
	)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID).Msg("failed to create reservation")
		return nil, err
	}

	s.logger.Info().Str("reservation_id", r.ID).Int("people", r.People).Msg("reservation created")
	return r, nil
}

func (s *ReservationService) ListMine(ctx context.Context, caller domain.Caller, page domain.Page) (*ports.PageResult[ports.ReservationView], error) {
	items, total, err := s.reservations.List(ctx, ports.OwnerFilter{UserID: caller.UserID}, page)
	if err != nil {
		return nil, err
	}
	views := make([]ports.ReservationView, 0, len(items))
	for _, r := range items {
		views = append(views, ports.ReservationView{Reservation: r})
	}
	return ports.NewPageResult(views, total, page), nil
}

func (s *ReservationService) Get(ctx context.Context, caller domain.Caller, id string) (*ports.ReservationView, error) {
	r, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := caller.Authorize(domain.OwnerOrAdmin(r.UserID)); err != nil {
		return nil, err
	}
	return &ports.ReservationView{Reservation: r}, nil
}

func (s *ReservationService) ListAll(ctx context.Context, caller domain.Caller, page domain.Page) (*ports.PageResult[ports.ReservationView], error) {
	if err := caller.Authorize(domain.RequireRole(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	items, total, err := s.reservations.List(ctx, ports.OwnerFilter{}, page)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, r := range items {
		ids = append(ids, r.UserID)
	}
	owners, err := ownerSummaries(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ports.ReservationView, 0, len(items))
	for _, r := range items {
		views = append(views, ports.ReservationView{Reservation: r, Owner: owners[r.UserID]})
	}
	return ports.NewPageResult(views, total, page), nil
}

func (s *ReservationService) SetStatus(ctx context.Context, caller domain.Caller, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	if err := caller.Authorize(domain.RequireRole(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.Invalidf("unknown reservation status %q", status)
	}

	current, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("set reservation status: %w (from %s to %s)", domain.ErrInvalidTransition, current.Status, status)
	}

	now := time.Now().UTC()
	var updated *domain.Reservation
	err = s.audit.Mutate(ctx,
		func(ctx context.Context) error {
			var err error
			updated, err = s.reservations.UpdateStatus(ctx, id, status, now)
			return err
		},
		func() domain.ActivityLog { return domain.ReservationStatusActivity(caller.UserID, updated, now) },
	)
	if err != nil {
		return nil, err
	}

	metrics.StatusChangesTotal.WithLabelValues("reservation", string(status)).Inc()
	return updated, nil
}
