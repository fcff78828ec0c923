package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"statuspage/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// CacheInvalidator drops cached public views of an organization.
type CacheInvalidator interface {
	InvalidateOrg(ctx context.Context, orgID uuid.UUID) error
}

type EventHandler struct {
	cache  CacheInvalidator
	logger *zerolog.Logger
}

func NewEventHandler(cache CacheInvalidator, logger *zerolog.Logger) *EventHandler {
	return &EventHandler{
		cache:  cache,
		logger: logger,
	}
}

func (h *EventHandler) Handle(ctx context.Context, msg amqp091.Delivery) error {
	var event EventPayload
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		metrics.EventsConsumed.WithLabelValues("malformed", "error").Inc()
		return fmt.Errorf("decode event: %w", err)
	}

	switch event.Family() {
	case "incident", "service", "settings", "organization":
	default:
		metrics.EventsConsumed.WithLabelValues(event.Type, "ignored").Inc()
		return nil
	}

	if event.OrganizationID == uuid.Nil {
		metrics.EventsConsumed.WithLabelValues(event.Type, "error").Inc()
		return fmt.Errorf("event %s has no organization", event.ID)
	}

	if err := h.cache.InvalidateOrg(ctx, event.OrganizationID); err != nil {
		metrics.EventsConsumed.WithLabelValues(event.Type, "error").Inc()
		return fmt.Errorf("invalidate org %s: %w", event.OrganizationID, err)
	}

	h.logger.Debug().
		Str("event_type", event.Type).
		Str("org_id", event.OrganizationID.String()).
		Msg("public cache invalidated")
	metrics.EventsConsumed.WithLabelValues(event.Type, "ok").Inc()
	return nil
}
