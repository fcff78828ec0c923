package app

import (
	"context"
)

// StartConsumer invalidates public caches as domain events arrive.
func StartConsumer(ctx context.Context, c *Container) {
	// Consume ranges over the delivery channel, so it gets its own goroutine
	go func() {
		if err := c.Consumer.Consume(ctx, c.eventHandler); err != nil {
			c.Logger.Error().
				Err(err).
				Msg("rabbitmq consumer stopped")
		}
	}()
}
