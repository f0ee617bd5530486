package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

type LocationService struct {
	locations ports.LocationRepository
	logger    zerolog.Logger
}

func NewLocationService(locations ports.LocationRepository, logger zerolog.Logger) *LocationService {
	return &LocationService{locations: locations, logger: logger}
}

func (s *LocationService) List(ctx context.Context, page domain.Page) (*ports.PageResult[*domain.Location], error) {
	items, total, err := s.locations.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return ports.NewPageResult(items, total, page), nil
}

func (s *LocationService) Create(ctx context.Context, caller domain.Caller, in ports.LocationInput) (*domain.Location, error) {
	if err := caller.Authorize(domain.RequireRole(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	if err := validateLocation(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	l := &domain.Location{ID: domain.NewID(), CreatedAt: now}
	applyLocation(l, in, now)

	if err := s.locations.Create(ctx, l); err != nil {
		return nil, err
	}
	s.logger.Info().Str("location_id", l.ID).Msg("location created")
	return l, nil
}

func (s *LocationService) Update(ctx context.Context, caller domain.Caller, id string, in ports.LocationInput) (*domain.Location, error) {
	if err := caller.Authorize(domain.RequireRole(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	if err := validateLocation(in); err != nil {
		return nil, err
	}

	l, err := s.locations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyLocation(l, in, time.Now().UTC())

	if err := s.locations.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *LocationService) Delete(ctx context.Context, caller domain.Caller, id string) error {
	if err := caller.Authorize(domain.RequireRole(domain.RoleAdmin)); err != nil {
		return err
	}
	return s.locations.Delete(ctx, id)
}

func validateLocation(in ports.LocationInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Invalidf("name is required")
	}
	if strings.TrimSpace(in.Address) == "" {
		return domain.Invalidf("address is required")
	}
	if in.Coordinates.Lat < -90 || in.Coordinates.Lat > 90 || in.Coordinates.Lng < -180 || in.Coordinates.Lng > 180 {
		return domain.Invalidf("coordinates out of range")
	}
	return nil
}

func applyLocation(l *domain.Location, in ports.LocationInput, now time.Time) {
	l.Name = strings.TrimSpace(in.Name)
	l.Address = strings.TrimSpace(in.Address)
	l.Coordinates = in.Coordinates
	l.Phone = in.Phone
	l.Hours = in.Hours
	l.UpdatedAt = now
}
