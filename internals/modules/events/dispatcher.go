package events

import (
	"context"
	"sync"
	"time"

	"statuspage/pkg/metrics"
	"statuspage/pkg/rabbitmq"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Publisher delivers one event to the broker.
type Publisher interface {
	Publish(ctx context.Context, ev rabbitmq.EventPayload) error
}

// Dispatcher fans domain events out to the broker from a fixed worker pool.
// Emit never blocks the request path.
type Dispatcher struct {
	workerCount    int
	workerWG       sync.WaitGroup
	publishTimeout time.Duration

	mu     sync.RWMutex
	queue  chan rabbitmq.EventPayload
	closed bool

	publisher Publisher
	logger    *zerolog.Logger
}

func NewDispatcher(workerCount, bufferSize int, publishTimeout time.Duration, publisher Publisher, logger *zerolog.Logger) *Dispatcher {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Dispatcher{
		workerCount:    workerCount,
		publishTimeout: publishTimeout,
		queue:          make(chan rabbitmq.EventPayload, bufferSize),
		publisher:      publisher,
		logger:         logger,
	}
}

func (d *Dispatcher) Start() {
	d.workerWG.Add(d.workerCount)

	for range d.workerCount {
		go d.work()
	}
	d.logger.Info().Int("workers", d.workerCount).Msg("event dispatcher started")
}

func (d *Dispatcher) work() {
	defer d.workerWG.Done()

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.publishTimeout)
		err := d.publisher.Publish(ctx, ev)
		cancel()

		if err != nil {
			metrics.EventsPublished.WithLabelValues(ev.Type, "error").Inc()
			d.logger.Error().
				Err(err).
				Str("event_type", ev.Type).
				Str("event_id", ev.ID.String()).
				Msg("failed to publish event")
			continue
		}
		metrics.EventsPublished.WithLabelValues(ev.Type, "ok").Inc()
	}
}

// Emit queues an event. When the buffer is full the event is dropped and logged.
func (d *Dispatcher) Emit(eventType string, orgID uuid.UUID, payload any) {
	ev, err := rabbitmq.NewEvent(eventType, orgID, payload)
	if err != nil {
		d.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to encode event")
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warn().Str("event_type", eventType).Msg("dispatcher stopped, dropping event")
		return
	}

	select {
	case d.queue <- ev:
	default:
		metrics.EventsPublished.WithLabelValues(eventType, "dropped").Inc()
		d.logger.Error().
			Str("event_type", eventType).
			Str("org_id", orgID.String()).
			Msg("event buffer full, dropping event")
	}
}

// Stop closes the queue and waits for in-flight publishes to finish.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.workerWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info().Msg("event dispatcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
