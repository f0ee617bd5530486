package queue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

type recordingWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func TestKafkaPublisher_PublishesEnvelope(t *testing.T) {
	w := &recordingWriter{}
	p := newPublisher(w, zerolog.Nop())
	p.Start()

	entry := domain.NewActivityLog("u1", domain.ActionOrderCreated, "Pedido #o1 con un total de S/. 20.00", time.Now().UTC())
	p.Publish(context.Background(), entry)
	p.Close()

	if !w.closed {
		t.Fatal("writer not closed")
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	msg := w.msgs[0]
	if string(msg.Key) != "u1" {
		t.Fatalf("message must be keyed by user id, got %q", msg.Key)
	}

	var ev domain.ActivityEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if ev.EventType != domain.EventActivityRecorded || ev.Payload.ID != entry.ID || ev.EventID == "" {
		t.Fatalf("unexpected envelope: %+v", ev)
	}
}

func TestKafkaPublisher_WriteErrorsAreSwallowed(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker down")}
	p := newPublisher(w, zerolog.Nop())
	p.Start()

	p.Publish(context.Background(), domain.NewActivityLog("u1", domain.ActionPaymentCreated, "", time.Now()))
	p.Close()

	if len(w.msgs) != 0 || !w.closed {
		t.Fatalf("unexpected writer state: %+v", w)
	}
}

func TestKafkaPublisher_PublishAfterCloseIsNoop(t *testing.T) {
	w := &recordingWriter{}
	p := newPublisher(w, zerolog.Nop())
	p.Start()
	p.Close()

	p.Publish(context.Background(), domain.NewActivityLog("u1", domain.ActionOrderCreated, "", time.Now()))
	if len(w.msgs) != 0 {
		t.Fatalf("expected no messages, got %d", len(w.msgs))
	}
}
