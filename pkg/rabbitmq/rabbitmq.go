package rabbitmq

import (
	"context"
	"fmt"
	"statuspage/config"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const dialAttempts = 5

func NewConnection(ctx context.Context, rmqCfg *config.RabbitMQConfig, log *zerolog.Logger) (*amqp091.Connection, error) {
	var lastErr error
	for i := range dialAttempts {
		conn, err := amqp091.Dial(rmqCfg.URL)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", i+1).Msg("rabbitmq dial failed, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return nil, fmt.Errorf("connect to rabbitmq after %d attempts: %w", dialAttempts, lastErr)
}

// SetupTopology declares the durable exchange and queue and binds every key.
func SetupTopology(conn *amqp091.Connection, rmqCfg *config.RabbitMQConfig) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(
		rmqCfg.ExchangeName,
		rmqCfg.ExchangeType,
		true, false, false, false, nil,
	); err != nil {
		return fmt.Errorf("declare exchange %s: %w", rmqCfg.ExchangeName, err)
	}

	if _, err := ch.QueueDeclare(
		rmqCfg.QueueName,
		true, false, false, false, nil,
	); err != nil {
		return fmt.Errorf("declare queue %s: %w", rmqCfg.QueueName, err)
	}

	for _, key := range rmqCfg.BindingKeys {
		if err := ch.QueueBind(
			rmqCfg.QueueName,
			key,
			rmqCfg.ExchangeName,
			false, nil,
		); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}

	return nil
}
