package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/chickensystem/restaurant-api/internal/api/metrics"
	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

const idempotencyScopeOrder = "order"

type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	users    ports.UserRepository
	audit    *AuditTrail
	idem     ports.IdempotencyStore
	logger   zerolog.Logger
}

// NewOrderService builds the order service. idem may be nil to disable
// Idempotency-Key handling.
func NewOrderService(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	users ports.UserRepository,
	audit *AuditTrail,
	idem ports.IdempotencyStore,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{orders: orders, products: products, users: users, audit: audit, idem: idem, logger: logger}
}

// Create validates the items, recomputes the total from the per-item snapshot
// prices and stores a pending order followed by its activity entry.
func (s *OrderService) Create(ctx context.Context, caller domain.Caller, in ports.CreateOrderInput) (*ports.OrderResult, error) {
	claim, existingID, err := claimKey(ctx, s.idem, idempotencyScopeOrder, scopedKey(in.IdempotencyKey, caller.UserID), s.logger)
	if err != nil {
		return nil, err
	}
	if existingID != "" {
		return s.replay(ctx, in.IdempotencyKey, existingID)
	}
	defer claim.release(ctx)

	items, err := s.validateItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	total := domain.OrderTotal(items)
	if !total.IsPositive() {
		return nil, domain.Invalidf("order total must be positive")
	}
	if in.Total != nil && !domain.Money(*in.Total).Equal(total) {
		return nil, domain.Invalidf("total %s does not match items total %s", domain.FormatMoney(*in.Total), total)
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:        domain.NewID(),
		UserID:    caller.UserID,
		Items:     items,
		Total:     total.InexactFloat64(),
		Status:    domain.OrderPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.audit.Mutate(ctx,
		func(ctx context.Context) error { return s.orders.Create(ctx, order) },
		func() domain.ActivityLog { return domain.OrderCreatedActivity(order, now) },
	)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID).Msg("failed to create order")
		return nil, err
	}

	claim.complete(ctx, order.ID)

	metrics.OrdersCreatedTotal.Inc()
	s.logger.Info().Str("order_id", order.ID).Str("user_id", caller.UserID).Str("total", total.String()).Msg("order created")
	return &ports.OrderResult{Order: order}, nil
}

func (s *OrderService) replay(ctx context.Context, key, orderID string) (*ports.OrderResult, error) {
	existing, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	metrics.IdempotentReplaysTotal.WithLabelValues(idempotencyScopeOrder).Inc()
	s.logger.Info().Str("idempotency_key", key).Str("order_id", existing.ID).Msg("idempotent replay")
	return &ports.OrderResult{Order: existing, Replayed: true}, nil
}

func (s *OrderService) validateItems(ctx context.Context, in []ports.OrderItemInput) ([]domain.OrderItem, error) {
	if len(in) == 0 {
		return nil, domain.Invalidf("order must contain at least one item")
	}

	items := make([]domain.OrderItem, 0, len(in))
	ids := make([]string, 0, len(in))
	for i, it := range in {
		if it.ProductID == "" {
			return nil, domain.Invalidf("items[%d]: productId is required", i)
		}
		if it.Quantity < 1 {
			return nil, domain.Invalidf("items[%d]: quantity must be at least 1", i)
		}
		if !domain.Money(it.Price).IsPositive() {
			return nil, domain.Invalidf("items[%d]: price must be greater than 0", i)
		}
		// stored at cents so the items always add up to the stored total
		price := domain.Money(it.Price).InexactFloat64()
		items = append(items, domain.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity, Price: price})
		ids = append(ids, it.ProductID)
	}

	found, err := s.products.FindByIDs(ctx, distinct(ids))
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	for i, it := range items {
		if _, ok := found[it.ProductID]; !ok {
			return nil, domain.Invalidf("items[%d]: unknown product %s", i, it.ProductID)
		}
	}
	return items, nil
}

// ListMine returns the caller's orders with products resolved.
func (s *OrderService) ListMine(ctx context.Context, caller domain.Caller, page domain.Page) (*ports.PageResult[ports.OrderView], error) {
	orders, total, err := s.orders.List(ctx, ports.OwnerFilter{UserID: caller.UserID}, page)
	if err != nil {
		return nil, err
	}
	views, err := s.views(ctx, orders, false)
	if err != nil {
		return nil, err
	}
	return ports.NewPageResult(views, total, page), nil
}

// Get returns one order to its owner or an admin.
func (s *OrderService) Get(ctx context.Context, caller domain.Caller, id string) (*ports.OrderView, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := caller.Authorize(domain.OwnerOrAdmin(order.UserID)); err != nil {
		return nil, err
	}
	views, err := s.views(ctx, []*domain.Order{order}, false)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListAll returns every order with owner and products resolved. Admin only.
func (s *OrderService) ListAll(ctx context.Context, caller domain.Caller, page domain.Page) (*ports.PageResult[ports.OrderView], error) {
	if err := caller.Authorize(domain.RequireRole(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	orders, total, err := s.orders.List(ctx, ports.OwnerFilter{}, page)
	if err != nil {
		return nil, err
	}
	views, err := s.views(ctx, orders, true)
	if err != nil {
		return nil, err
	}
	return ports.NewPageResult(views, total, page), nil
}

// SetStatus moves an order along its transition table. Admin only. Re-applying
// the current status is accepted and logged again.
func (s *OrderService) SetStatus(ctx context.Context, caller domain.Caller, id string, status domain.OrderStatus) (*domain.Order, error) {
	if err := caller.Authorize(domain.RequireRole(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.Invalidf("unknown order status %q", status)
	}

	current, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("set order status: %w (from %s to %s)", domain.ErrInvalidTransition, current.Status, status)
	}

	now := time.Now().UTC()
	var updated *domain.Order
	err = s.audit.Mutate(ctx,
		func(ctx context.Context) error {
			var err error
			updated, err = s.orders.UpdateStatus(ctx, id, status, now)
			return err
		},
		func() domain.ActivityLog { return domain.OrderStatusActivity(caller.UserID, updated, now) },
	)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrInvalidTransition) {
			s.logger.Error().Err(err).Str("order_id", id).Msg("failed to update order status")
		}
		return nil, err
	}

	metrics.StatusChangesTotal.WithLabelValues("order", string(status)).Inc()
	s.logger.Info().Str("order_id", id).Str("status", string(status)).Str("admin_id", caller.UserID).Msg("order status updated")
	return updated, nil
}

func (s *OrderService) views(ctx context.Context, orders []*domain.Order, withOwner bool) ([]ports.OrderView, error) {
	var productIDs, userIDs []string
	for _, o := range orders {
		productIDs = append(productIDs, o.ProductIDs()...)
		userIDs = append(userIDs, o.UserID)
	}

	products := map[string]*domain.Product{}
	if len(productIDs) > 0 {
		var err error
		products, err = s.products.FindByIDs(ctx, distinct(productIDs))
		if err != nil {
			return nil, fmt.Errorf("resolve products: %w", err)
		}
	}

	var owners map[string]*domain.UserSummary
	if withOwner {
		var err error
		if owners, err = ownerSummaries(ctx, s.users, userIDs); err != nil {
			return nil, err
		}
	}

	views := make([]ports.OrderView, 0, len(orders))
	for _, o := range orders {
		lines := make([]ports.OrderLine, 0, len(o.Items))
		for _, it := range o.Items {
			lines = append(lines, ports.OrderLine{
				ProductID: it.ProductID,
				Product:   products[it.ProductID],
				Quantity:  it.Quantity,
				Price:     it.Price,
			})
		}
		views = append(views, ports.OrderView{Order: o, Owner: owners[o.UserID], Lines: lines})
	}
	return views, nil
}
