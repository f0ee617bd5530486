package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/chickensystem/restaurant-api/internal/api/metrics"
	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

// AuditTrail pairs every primary mutation with its activity log entry.
//
// The primary write always goes first. With an atomic Transactor both writes
// commit or roll back together. Otherwise a failed audit insert is handed to
// the outbox for retry and the mutation stands.
type AuditTrail struct {
	repo      ports.ActivityLogRepository
	tx        ports.Transactor
	outbox    ports.AuditOutbox
	publisher ports.EventPublisher
	log       zerolog.Logger
}

// NewAuditTrail wires the audit trail. outbox and publisher may be nil.
func NewAuditTrail(
	repo ports.ActivityLogRepository,
	tx ports.Transactor,
	outbox ports.AuditOutbox,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) *AuditTrail {
	return &AuditTrail{repo: repo, tx: tx, outbox: outbox, publisher: publisher, log: log}
}

// Mutate runs primary and then appends the entry built by describe. describe is
// only called after primary succeeded, so it may read ids assigned by it.
func (a *AuditTrail) Mutate(
	ctx context.Context,
	primary func(ctx context.Context) error,
	describe func() domain.ActivityLog,
) error {
	var entry domain.ActivityLog
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := primary(ctx); err != nil {
			return err
		}
		entry = describe()
		return a.append(ctx, entry)
	})
	if err != nil {
		return err
	}

	if a.publisher != nil {
		a.publisher.Publish(ctx, entry)
	}
	return nil
}

func (a *AuditTrail) append(ctx context.Context, entry domain.ActivityLog) error {
	err := a.repo.Append(ctx, &entry)
	if err == nil {
		metrics.ActivityLogWritesTotal.WithLabelValues("ok").Inc()
		return nil
	}

	if a.tx.Atomic() || a.outbox == nil {
		metrics.ActivityLogWritesTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("append activity log: %w", err)
	}

	a.log.Warn().Err(err).
		Str("user_id", entry.UserID).
		Str("action", entry.Action).
		Msg("activity log insert failed, deferred to outbox")
	metrics.ActivityLogWritesTotal.WithLabelValues("deferred").Inc()
	a.outbox.Enqueue(entry)
	return nil
}
