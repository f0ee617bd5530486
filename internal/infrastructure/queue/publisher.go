package queue

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/chickensystem/restaurant-api/internal/api/metrics"
	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

const (
	producerName  = "restaurant-api"
	publishBuffer = 1024
	writeTimeout  = 10 * time.Second
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher implements ports.EventPublisher. Publish only enqueues; a
// single goroutine writes to the broker so request latency never depends on it.
// Messages are keyed by user id so one user's events stay ordered.
type KafkaPublisher struct {
	w     messageWriter
	inbox chan kafka.Message
	log   zerolog.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewKafkaPublisher(brokers []string, topic string, log zerolog.Logger) *KafkaPublisher {
	return newPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}, log)
}

func newPublisher(w messageWriter, log zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		w:     w,
		inbox: make(chan kafka.Message, publishBuffer),
		log:   log,
		done:  make(chan struct{}),
	}
}

// Start runs the writer loop until Close is called.
func (p *KafkaPublisher) Start() {
	go func() {
		defer close(p.done)
		for m := range p.inbox {
			p.write(m)
		}
		if err := p.w.Close(); err != nil {
			p.log.Warn().Err(err).Msg("kafka writer close")
		}
	}()
}

// Publish enqueues the entry. It drops the event when the buffer is full.
func (p *KafkaPublisher) Publish(_ context.Context, entry domain.ActivityLog) {
	value, err := json.Marshal(domain.NewActivityEvent(producerName, entry))
	if err != nil {
		p.log.Error().Err(err).Str("entry_id", entry.ID).Msg("encode activity event")
		return
	}
	msg := kafka.Message{
		Key:   []byte(entry.UserID),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(domain.EventActivityRecorded)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	select {
	case p.inbox <- msg:
	default:
		metrics.EventsPublishedTotal.WithLabelValues("error").Inc()
		p.log.Warn().Str("entry_id", entry.ID).Msg("event buffer full, activity event dropped")
	}
}

// Close flushes buffered messages and closes the writer.
func (p *KafkaPublisher) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.inbox)
	}
	p.mu.Unlock()
	<-p.done
}

func (p *KafkaPublisher) write(m kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := p.w.WriteMessages(ctx, m); err != nil {
		metrics.EventsPublishedTotal.WithLabelValues("error").Inc()
		p.log.Error().Err(err).Str("key", string(m.Key)).Msg("publish activity event")
		return
	}
	metrics.EventsPublishedTotal.WithLabelValues("ok").Inc()
}
