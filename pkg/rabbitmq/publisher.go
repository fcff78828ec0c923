package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

var (
	ErrNotConfirmed   = errors.New("broker did not confirm message")
	ErrConfirmTimeout = errors.New("publish confirm timeout")
)

// confirmation is the part of *amqp091.DeferredConfirmation the publisher waits on.
type confirmation interface {
	Done() <-chan struct{}
	Acked() bool
}

type confirmChannel interface {
	publish(ctx context.Context, exchange, key string, msg amqp091.Publishing) (confirmation, error)
	Close() error
}

type amqpChannel struct{ ch *amqp091.Channel }

func (a amqpChannel) publish(ctx context.Context, exchange, key string, msg amqp091.Publishing) (confirmation, error) {
	dc, err := a.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, key, false, false, msg)
	if err != nil {
		return nil, err
	}
	return dc, nil
}

func (a amqpChannel) Close() error { return a.ch.Close() }

type Publisher struct {
	mu       sync.Mutex
	ch       confirmChannel
	exchange string
	timeout  time.Duration
}

func NewPublisher(conn *amqp091.Connection, exchange string, confirmTimeout time.Duration) (*Publisher, error) {
	if conn == nil {
		return nil, errors.New("AMQP connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		ch.Close()
		return nil, err
	}

	if confirmTimeout <= 0 {
		confirmTimeout = 5 * time.Second
	}

	return &Publisher{
		ch:       amqpChannel{ch: ch},
		exchange: exchange,
		timeout:  confirmTimeout,
	}, nil
}

// Publish sends ev routed by its type and waits for the broker confirm of
// that message. Confirms are matched by delivery tag, so a confirm that
// arrives after a timeout is never credited to a later message.
func (p *Publisher) Publish(ctx context.Context, ev EventPayload) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		return errors.New("AMQP channel is nil")
	}

	confirm, err := p.ch.publish(
		ctx,
		p.exchange,
		ev.Type,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    ev.ID.String(),
			Type:         ev.Type,
			Timestamp:    ev.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return err
	}

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case <-confirm.Done():
		if !confirm.Acked() {
			return ErrNotConfirmed
		}
		return nil
	case <-timer.C:
		return ErrConfirmTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}
