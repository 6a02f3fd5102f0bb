package events

import (
	"context"
	"encoding/json"
	"fmt"

	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/shared/logger"
	"guideadmin/internal/shared/mq"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Broker — то, что нужно публикатору от подключения к RabbitMQ
type Broker interface {
	Publish(ctx context.Context, exchange, routingKey string, body []byte, headers amqp.Table) error
}

// AMQPActionPublisher публикует AdminAction в admin_topic
type AMQPActionPublisher struct {
	broker Broker
	log    *logger.Logger
}

// NewAMQPActionPublisher создает публикатор событий
func NewAMQPActionPublisher(broker Broker, log *logger.Logger) *AMQPActionPublisher {
	return &AMQPActionPublisher{broker: broker, log: log}
}

// Publish отправляет событие с routing key admin.action.<resource>
func (p *AMQPActionPublisher) Publish(ctx context.Context, action domain.AdminAction) error {
	body, err := json.Marshal(action)
	if err != nil {
		return fmt.Errorf("marshal admin action: %w", err)
	}

	routingKey := mq.AdminActionPrefix + action.Resource
	headers := amqp.Table{}
	if action.RequestID != "" {
		headers["request_id"] = action.RequestID
	}

	if err := p.broker.Publish(ctx, mq.AdminExchange, routingKey, body, headers); err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	p.log.WithContext(ctx).Debug(logger.Entry{
		Action:     "admin_action_published",
		Message:    routingKey,
		ResourceID: action.ResourceID,
	})
	return nil
}

// NoopActionPublisher используется, когда RabbitMQ не настроен
type NoopActionPublisher struct{}

func (NoopActionPublisher) Publish(context.Context, domain.AdminAction) error { return nil }
