package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"mealmatch/config"
	"mealmatch/internal/domain"
)

// PublishTimeout bounds a single publish.
const PublishTimeout = 3 * time.Second

// Publisher announces stored availability changes to downstream consumers
// such as the matching backend.
type Publisher interface {
	PublishAvailabilityChanged(ctx context.Context, event domain.AvailabilityChangedEvent) error
	Close() error
}

// RoutingKey returns availability.<user id>.updated.
func RoutingKey(userID int64) string {
	return "availability." + strconv.FormatInt(userID, 10) + ".updated"
}

type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
	mu       sync.Mutex
}

// NewPublisher dials RabbitMQ when it is enabled and falls back to a no-op
// publisher otherwise.
func NewPublisher(cfg config.RabbitMQConfig, logger *zap.Logger) (Publisher, error) {
	if !cfg.Enabled {
		logger.Info("rabbitmq disabled, availability events will not be published")
		return NoopPublisher{}, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	if err := channel.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	logger.Info("rabbitmq publisher ready", zap.String("exchange", cfg.Exchange))

	return &AMQPPublisher{
		conn:     conn,
		channel:  channel,
		exchange: cfg.Exchange,
		logger:   logger.Named("events"),
	}, nil
}

func (p *AMQPPublisher) PublishAvailabilityChanged(ctx context.Context, event domain.AvailabilityChangedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, RoutingKey(event.UserID), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.ChangedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("availability event published",
		zap.String("event_id", event.ID),
		zap.Int64("user_id", event.UserID),
	)
	return nil
}

func (p *AMQPPublisher) Close() error {
	if p == nil || p.channel == nil {
		return nil
	}
	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) PublishAvailabilityChanged(context.Context, domain.AvailabilityChangedEvent) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
