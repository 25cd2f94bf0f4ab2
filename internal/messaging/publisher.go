package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fstore-be/internal/logger"
	"fstore-be/internal/metrics"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishTimeout = 10 * time.Second

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type channelSource interface {
	Channel(ctx context.Context) (channel, error)
}

// connSource adapts *Connection to channelSource.
type connSource struct{ conn *Connection }

func (s connSource) Channel(ctx context.Context) (channel, error) {
	ch, err := s.conn.Channel(ctx)
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// Publisher sends JSON events to the orders topic exchange.
type Publisher struct {
	source   channelSource
	exchange string
	metrics  *metrics.Registry
}

func NewPublisher(conn *Connection, reg *metrics.Registry) *Publisher {
	return &Publisher{source: connSource{conn: conn}, exchange: OrdersExchange, metrics: reg}
}

// Publish marshals payload and sends it persistently under routingKey.
func (p *Publisher) Publish(ctx context.Context, routingKey string, payload any) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "messaging"),
		zap.String("exchange", p.exchange),
		zap.String("routing_key", routingKey),
	)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	ch, err := p.source.Channel(pubCtx)
	if err != nil {
		p.count(metrics.EventsPublishFailed)
		log.Warn("no channel available", zap.Error(err))
		return err
	}

	msg := amqp.Publishing{
		ContentType:   "application/json",
		Body:          body,
		DeliveryMode:  amqp.Persistent,
		Timestamp:     time.Now().UTC(),
		MessageId:     uuid.NewString(),
		CorrelationId: logger.RequestIDFrom(ctx),
	}

	if err := ch.PublishWithContext(pubCtx, p.exchange, routingKey, false, false, msg); err != nil {
		p.count(metrics.EventsPublishFailed)
		log.Error("failed to publish message", zap.Error(err))
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.count(metrics.EventsPublished)
	log.Debug("message published", zap.Int("message_size", len(body)))
	return nil
}

func (p *Publisher) count(name string) {
	if p.metrics != nil {
		p.metrics.Counter(name).Inc()
	}
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	logger.FromCtx(ctx).Debug("event publishing disabled", zap.String("routing_key", routingKey))
	return nil
}
