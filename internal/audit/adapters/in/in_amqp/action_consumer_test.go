package in_amqp

import (
	"context"
	"errors"
	"io"
	"testing"

	"guideadmin/internal/audit/domain"
	"guideadmin/internal/shared/logger"

	amqp091 "github.com/rabbitmq/amqp091-go"
)

// acker запоминает, как сообщение было подтверждено
type acker struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *acker) Ack(uint64, bool) error { a.acked = true; return nil }

func (a *acker) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

func (a *acker) Reject(_ uint64, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

type recordFunc func(context.Context, domain.Action) (*domain.Action, error)

func (f recordFunc) Execute(ctx context.Context, a domain.Action) (*domain.Action, error) {
	return f(ctx, a)
}

func deliver(t *testing.T, body string, record recordFunc) *acker {
	t.Helper()
	c := NewActionConsumer(nil, record, logger.NewWriterLogger("test", io.Discard))
	ack := &acker{}
	c.handle(context.Background(), amqp091.Delivery{
		Acknowledger: ack,
		Body:         []byte(body),
		Headers:      amqp091.Table{"request_id": "req-1"},
	})
	return ack
}

const validBody = `{"actor_id":"1","action":"review","resource":"guide_request","resource_id":"42","value":"accept","occurred_at":"2025-03-01T10:00:00Z"}`

func TestConsumerAcksStoredAction(t *testing.T) {
	var got domain.Action
	ack := deliver(t, validBody, func(_ context.Context, a domain.Action) (*domain.Action, error) {
		got = a
		return &a, nil
	})
	if !ack.acked || ack.nacked {
		t.Fatalf("ack = %+v, want acked", ack)
	}
	if got.ResourceID != "42" || got.Value != "accept" {
		t.Fatalf("decoded action = %+v", got)
	}
}

func TestConsumerDropsMalformedJSON(t *testing.T) {
	called := false
	ack := deliver(t, `{not json`, func(_ context.Context, a domain.Action) (*domain.Action, error) {
		called = true
		return &a, nil
	})
	if called {
		t.Fatalf("use case must not run for malformed body")
	}
	if !ack.nacked || ack.requeue {
		t.Fatalf("ack = %+v, want nack without requeue", ack)
	}
}

func TestConsumerDropsInvalidAction(t *testing.T) {
	ack := deliver(t, validBody, func(context.Context, domain.Action) (*domain.Action, error) {
		return nil, domain.ErrInvalidAction
	})
	if !ack.nacked || ack.requeue {
		t.Fatalf("ack = %+v, want nack without requeue", ack)
	}
}

func TestConsumerRequeuesOnStoreFailure(t *testing.T) {
	ack := deliver(t, validBody, func(context.Context, domain.Action) (*domain.Action, error) {
		return nil, errors.New("db down")
	})
	if !ack.nacked || !ack.requeue {
		t.Fatalf("ack = %+v, want nack with requeue", ack)
	}
}
