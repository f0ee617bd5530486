// Package metrics defines the custom Prometheus collectors of the restaurant
// API. It is the single source of truth for metric names, labels and help
// strings. Collectors register themselves with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "restaurant"

// ── Orders & payments ─────────────────────────────────────────────────────────

// OrdersCreatedTotal counts newly created orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	},
)

// PaymentsCreatedTotal counts payments registered against orders.
// Label:
//   - method: cash, card, yape or plin
var PaymentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_created_total",
		Help:      "Total number of payments created, by method.",
	},
	[]string{"method"},
)

// StatusChangesTotal counts admin status updates.
// Labels:
//   - entity: order, payment or reservation
//   - status: the status applied
var StatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_changes_total",
		Help:      "Total number of status updates applied, by entity and new status.",
	},
	[]string{"entity", "status"},
)

// IdempotentReplaysTotal counts create requests answered from a previous result.
// Label:
//   - scope: order or payment
var IdempotentReplaysTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of create requests replayed via Idempotency-Key.",
	},
	[]string{"scope"},
)

// ── Audit trail ───────────────────────────────────────────────────────────────

// ActivityLogWritesTotal counts activity entry writes.
// Label:
//   - result: "ok", "deferred" (handed to the outbox) or "failed"
var ActivityLogWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_log_writes_total",
		Help:      "Total number of activity log writes, by result.",
	},
	[]string{"result"},
)

// AuditOutboxDepth tracks entries waiting in each outbox worker channel.
// Label:
//   - worker_id: numeric worker index
var AuditOutboxDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_outbox_depth",
		Help:      "Current number of activity entries pending retry in each outbox worker.",
	},
	[]string{"worker_id"},
)

// AuditOutboxResultsTotal counts final outcomes of outbox retries.
// Label:
//   - result: "recovered" or "dropped"
var AuditOutboxResultsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_outbox_results_total",
		Help:      "Total number of outbox entries by final outcome.",
	},
	[]string{"result"},
)

// ── Catalogue ─────────────────────────────────────────────────────────────────

// ProductCacheTotal counts product cache lookups.
// Label:
//   - result: "hit" or "miss"
var ProductCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_cache_total",
		Help:      "Total number of product cache lookups, by result.",
	},
	[]string{"result"},
)

// EventsPublishedTotal counts activity events handed to the message broker.
// Label:
//   - result: "ok" or "error"
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of activity events published, by result.",
	},
	[]string{"result"},
)
