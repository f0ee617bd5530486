package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/chickensystem/restaurant-api/internal/api/metrics"
	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

// flakyActivityRepo fails the first n appends, n = failures, then stores.
type flakyActivityRepo struct {
	ports.ActivityLogRepository
	mu       sync.Mutex
	failures int
	calls    int
	stored   []domain.ActivityLog
}

func (r *flakyActivityRepo) Append(_ context.Context, entry *domain.ActivityLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.calls <= r.failures {
		return errors.New("write concern timeout")
	}
	r.stored = append(r.stored, *entry)
	return nil
}

func (r *flakyActivityRepo) snapshot() (int, []domain.ActivityLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls, append([]domain.ActivityLog(nil), r.stored...)
}

func newTestOutbox(workers int, repo ports.ActivityLogRepository) *AuditOutbox {
	o := NewAuditOutbox(workers, repo, zerolog.Nop())
	o.backoff = time.Millisecond
	return o
}

func TestAuditOutbox_RetriesUntilStored(t *testing.T) {
	repo := &flakyActivityRepo{failures: 2}
	o := newTestOutbox(2, repo)
	o.Start(context.Background())

	o.Enqueue(domain.NewActivityLog("u1", domain.ActionOrderCreated, "Pedido #1", time.Now()))
	o.Close()

	calls, stored := repo.snapshot()
	if calls != 3 || len(stored) != 1 {
		t.Fatalf("expected 3 attempts and 1 stored entry, got %d attempts, %d stored", calls, len(stored))
	}
}

func TestAuditOutbox_GivesUpAfterMaxAttempts(t *testing.T) {
	repo := &flakyActivityRepo{failures: 100}
	o := newTestOutbox(1, repo)
	o.Start(context.Background())

	o.Enqueue(domain.NewActivityLog("u1", domain.ActionPaymentCreated, "Pago", time.Now()))
	o.Close()

	calls, stored := repo.snapshot()
	if calls != defaultMaxAttempts || len(stored) != 0 {
		t.Fatalf("expected %d attempts and nothing stored, got %d, %d", defaultMaxAttempts, calls, len(stored))
	}
}

func TestAuditOutbox_PreservesPerUserOrder(t *testing.T) {
	repo := &flakyActivityRepo{}
	o := newTestOutbox(4, repo)
	o.Start(context.Background())

	base := time.Now()
	for i := 0; i < 20; i++ {
		o.Enqueue(domain.NewActivityLog("u1", domain.ActionOrderUpdated, "", base.Add(time.Duration(i)*time.Second)))
	}
	o.Close()

	_, stored := repo.snapshot()
	if len(stored) != 20 {
		t.Fatalf("expected 20 entries, got %d", len(stored))
	}
	for i := 1; i < len(stored); i++ {
		if stored[i].CreatedAt.Before(stored[i-1].CreatedAt) {
			t.Fatalf("entries for one user were reordered at %d", i)
		}
	}
}

func TestAuditOutbox_EnqueueAfterCloseIsDropped(t *testing.T) {
	repo := &flakyActivityRepo{}
	o := newTestOutbox(1, repo)
	o.Start(context.Background())
	o.Close()

	o.Enqueue(domain.NewActivityLog("u1", domain.ActionOrderCreated, "", time.Now()))

	if calls, _ := repo.snapshot(); calls != 0 {
		t.Fatalf("closed outbox must not deliver, got %d calls", calls)
	}
}

func TestAuditOutbox_ShardIndexIsStable(t *testing.T) {
	o := newTestOutbox(8, &flakyActivityRepo{})
	first := o.shardIndex("user-42")
	for i := 0; i < 10; i++ {
		if got := o.shardIndex("user-42"); got != first {
			t.Fatalf("shard changed from %d to %d", first, got)
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard out of range: %d", first)
	}
}

func TestAuditOutbox_CancelAccountsForQueuedEntries(t *testing.T) {
	repo := &flakyActivityRepo{failures: 100}
	o := newTestOutbox(1, repo)
	dropped := metrics.AuditOutboxResultsTotal.WithLabelValues("dropped")
	before := testutil.ToFloat64(dropped)

	for i := 0; i < 3; i++ {
		o.Enqueue(domain.NewActivityLog("u1", domain.ActionOrderCreated, "Pedido", time.Now()))
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o.Start(ctx)
	o.Close()

	if got := testutil.ToFloat64(dropped) - before; got != 3 {
		t.Fatalf("expected 3 entries counted as dropped, got %v", got)
	}
	if _, stored := repo.snapshot(); len(stored) != 0 {
		t.Fatalf("nothing should be stored, got %d", len(stored))
	}
}
