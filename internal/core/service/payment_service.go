package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/chickensystem/restaurant-api/internal/api/metrics"
	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

const idempotencyScopePayment = "payment"

type PaymentService struct {
	payments ports.PaymentRepository
	orders   ports.OrderRepository
	users    ports.UserRepository
	audit    *AuditTrail
	idem     ports.IdempotencyStore
	logger   zerolog.Logger
}

func NewPaymentService(
	payments ports.PaymentRepository,
	orders ports.OrderRepository,
	users ports.UserRepository,
	audit *AuditTrail,
	idem ports.IdempotencyStore,
	logger zerolog.Logger,
) *PaymentService {
	return &PaymentService{payments: payments, orders: orders, users: users, audit: audit, idem: idem, logger: logger}
}

// Create registers a pending payment for an order owned by the caller. The
// order must still be pending and the amount must equal its total.
func (s *PaymentService) Create(ctx context.Context, caller domain.Caller, in ports.CreatePaymentInput) (*ports.PaymentResult, error) {
	if !in.Method.Valid() {
		return nil, domain.Invalidf("method must be one of: cash card yape plin")
	}
	if !domain.Money(in.Amount).IsPositive() {
		return nil, domain.Invalidf("amount must be greater than 0")
	}

	order, err := s.orders.FindByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if err := caller.Authorize(domain.OwnerOf(order.UserID)); err != nil {
		return nil, err
	}

	// scoped by order too, so a reused key never replays another order's payment
	claim, existingID, err := claimKey(ctx, s.idem, idempotencyScopePayment, scopedKey(in.IdempotencyKey, caller.UserID, order.ID), s.logger)
	if err != nil {
		return nil, err
	}
	if existingID != "" {
		return s.replay(ctx, existingID)
	}
	defer claim.release(ctx)

	if order.Status != domain.OrderPending {
		return nil, domain.Invalidf("order %s is %s and no longer accepts payments", order.ID, order.Status)
	}
	if !domain.SameAmount(in.Amount, order.Total) {
		return nil, domain.Invalidf("amount %s does not match order total %s", domain.FormatMoney(in.Amount), domain.FormatMoney(order.Total))
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:        domain.NewID(),
		OrderID:   order.ID,
		UserID:    caller.UserID,
		Amount:    in.Amount,
		Method:    in.Method,
		Status:    domain.PaymentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.audit.Mutate(ctx,
		func(ctx context.Context) error { return s.payments.Create(ctx, payment) },
		func() domain.ActivityLog { return domain.PaymentCreatedActivity(payment, now) },
	)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to create payment")
		return nil, err
	}

	claim.complete(ctx, payment.ID)

	metrics.PaymentsCreatedTotal.WithLabelValues(string(payment.Method)).Inc()
	s.logger.Info().
		Str("payment_id", payment.ID).
		Str("order_id", order.ID).
		Str("method", string(payment.Method)).
		Msg("payment created")
	return &ports.PaymentResult{Payment: payment}, nil
}

func (s *PaymentService) replay(ctx context.Context, paymentID string) (*ports.PaymentResult, error) {
	existing, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	metrics.IdempotentReplaysTotal.WithLabelValues(idempotencyScopePayment).Inc()
	return &ports.PaymentResult{Payment: existing, Replayed: true}, nil
}

func (s *PaymentService) ListMine(ctx context.Context, caller domain.Caller, page domain.Page) (*ports.PageResult[ports.PaymentView], error) {
	payments, total, err := s.payments.List(ctx, ports.OwnerFilter{UserID: caller.UserID}, page)
	if err != nil {
		return nil, err
	}
	views, err := s.views(ctx, payments, false)
	if err != nil {
		return nil, err
	}
	return ports.NewPageResult(views, total, page), nil
}

// ListAll returns every payment with order and owner resolved. Admin only.
func (s *PaymentService) ListAll(ctx context.Context, caller domain.Caller, page domain.Page) (*ports.PageResult[ports.PaymentView], error) {
	if err := caller.Authorize(domain.RequireRole(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	payments, total, err := s.payments.List(ctx, ports.OwnerFilter{}, page)
	if err != nil {
		return nil, err
	}
	views, err := s.views(ctx, payments, true)
	if err != nil {
		return nil, err
	}
	return ports.NewPageResult(views, total, page), nil
}

// SetStatus records the gateway outcome of a payment. Admin only.
func (s *PaymentService) SetStatus(ctx context.Context, caller domain.Caller, id string, status domain.PaymentStatus, transactionID string) (*domain.Payment, error) {
	if err := caller.Authorize(domain.RequireRole(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.Invalidf("unknown payment status %q", status)
	}

	current, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("set payment status: %w (from %s to %s)", domain.ErrInvalidTransition, current.Status, status)
	}

	now := time.Now().UTC()
	var updated *domain.Payment
	err = s.audit.Mutate(ctx,
		func(ctx context.Context) error {
			var err error
			updated, err = s.payments.UpdateStatus(ctx, id, status, transactionID, now)
			return err
		},
		func() domain.ActivityLog { return domain.PaymentStatusActivity(caller.UserID, updated, now) },
	)
	if err != nil {
		return nil, err
	}

	metrics.StatusChangesTotal.WithLabelValues("payment", string(status)).Inc()
	s.logger.Info().Str("payment_id", id).Str("status", string(status)).Msg("payment status updated")
	return updated, nil
}

func (s *PaymentService) views(ctx context.Context, payments []*domain.Payment, withOwner bool) ([]ports.PaymentView, error) {
	orderIDs := make([]string, 0, len(payments))
	userIDs := make([]string, 0, len(payments))
	for _, p := range payments {
		orderIDs = append(orderIDs, p.OrderID)
		userIDs = append(userIDs, p.UserID)
	}

	orders := map[string]*domain.Order{}
	if len(orderIDs) > 0 {
		var err error
		if orders, err = s.orders.FindByIDs(ctx, distinct(orderIDs)); err != nil {
			return nil, fmt.Errorf("resolve orders: %w", err)
		}
	}

	var owners map[string]*domain.UserSummary
	if withOwner {
		var err error
		if owners, err = ownerSummaries(ctx, s.users, userIDs); err != nil {
			return nil, err
		}
	}

	views := make([]ports.PaymentView, 0, len(payments))
	for _, p := range payments {
		views = append(views, ports.PaymentView{Payment: p, Order: orders[p.OrderID], Owner: owners[p.UserID]})
	}
	return views, nil
}
