package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/chickensystem/restaurant-api/internal/api/metrics"
	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

const (
	defaultWorkers     = 4
	channelBuffer      = 256
	defaultMaxAttempts = 5
	defaultBackoff     = 200 * time.Millisecond
)

// AuditOutbox retries activity entries whose first insert failed. Entries are
// routed to a fixed set of workers by consistent hashing on the user id, which
// keeps each user's entries in order.
type AuditOutbox struct {
	workers     []chan domain.ActivityLog
	repo        ports.ActivityLogRepository
	maxAttempts int
	backoff     time.Duration
	log         zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewAuditOutbox creates an outbox with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditOutbox(numWorkers int, repo ports.ActivityLogRepository, log zerolog.Logger) *AuditOutbox {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	o := &AuditOutbox{
		workers:     make([]chan domain.ActivityLog, numWorkers),
		repo:        repo,
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultBackoff,
		log:         log,
	}
	for i := range o.workers {
		o.workers[i] = make(chan domain.ActivityLog, channelBuffer)
	}
	return o
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled or
// after Close has drained their queues.
func (o *AuditOutbox) Start(ctx context.Context) {
	for i, ch := range o.workers {
		o.wg.Add(1)
		go o.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an entry to the worker responsible for its user. It never
// blocks: when the worker queue is full the entry is dropped and logged.
func (o *AuditOutbox) Enqueue(entry domain.ActivityLog) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.closed {
		o.drop(entry, "outbox closed")
		return
	}

	idx := o.shardIndex(entry.UserID)
	select {
	case o.workers[idx] <- entry:
		metrics.AuditOutboxDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		o.drop(entry, "outbox queue full")
	}
}

// Close stops accepting entries and waits for the workers to drain.
func (o *AuditOutbox) Close() {
	o.mu.Lock()
	if !o.closed {
		o.closed = true
		for _, ch := range o.workers {
			close(ch)
		}
	}
	o.mu.Unlock()
	o.wg.Wait()
}

// shardIndex maps a user id deterministically to a worker index.
func (o *AuditOutbox) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(o.workers)))
}

func (o *AuditOutbox) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityLog) {
	defer o.wg.Done()
	depth := metrics.AuditOutboxDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			o.discard(ch, depth)
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			o.deliver(ctx, id, entry)
		}
	}
}

// deliver retries the insert with exponential backoff.
func (o *AuditOutbox) deliver(ctx context.Context, workerID int, entry domain.ActivityLog) {
	wait := o.backoff
	var err error
	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		if err = o.repo.Append(ctx, &entry); err == nil {
			metrics.AuditOutboxResultsTotal.WithLabelValues("recovered").Inc()
			o.log.Info().
				Str("entry_id", entry.ID).
				Int("attempt", attempt).
				Msg("deferred activity entry stored")
			return
		}
		if attempt == o.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			o.drop(entry, "shutdown during retry")
			return
		case <-time.After(wait):
		}
		wait *= 2
	}

	o.log.Error().Err(err).
		Str("entry_id", entry.ID).
		Str("user_id", entry.UserID).
		Str("action", entry.Action).
		Int("worker_id", workerID).
		Msg("activity entry dropped after retries")
	metrics.AuditOutboxResultsTotal.WithLabelValues("dropped").Inc()
}

// discard empties a queue abandoned on cancellation so every entry is
// accounted for as dropped.
func (o *AuditOutbox) discard(ch <-chan domain.ActivityLog, depth prometheus.Gauge) {
	for {
		select {
		case entry, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			o.drop(entry, "shutdown before retry")
		default:
			return
		}
	}
}

func (o *AuditOutbox) drop(entry domain.ActivityLog, reason string) {
	metrics.AuditOutboxResultsTotal.WithLabelValues("dropped").Inc()
	o.log.Error().
		Str("entry_id", entry.ID).
		Str("user_id", entry.UserID).
		Str("action", entry.Action).
		Str("details", entry.Details).
		Msg("activity entry dropped: " + reason)
}
