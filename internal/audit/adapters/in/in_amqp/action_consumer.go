package in_amqp

import (
	"context"
	"encoding/json"
	"errors"

	"guideadmin/internal/audit/application/ports/in"
	"guideadmin/internal/audit/domain"
	"guideadmin/internal/shared/logger"
	"guideadmin/internal/shared/mq"

	amqp091 "github.com/rabbitmq/amqp091-go"
)

const consumerName = "audit-service"

// Consumer — подписка на очередь (mq.RabbitMQ)
type Consumer interface {
	Consume(ctx context.Context, queue, consumer string, handler func(amqp091.Delivery)) error
}

// ActionConsumer слушает admin.actions и пишет события в журнал
type ActionConsumer struct {
	consumer Consumer
	record   in.RecordActionUseCase
	log      *logger.Logger
}

func NewActionConsumer(consumer Consumer, record in.RecordActionUseCase, log *logger.Logger) *ActionConsumer {
	return &ActionConsumer{consumer: consumer, record: record, log: log}
}

// Start запускает консьюмер очереди admin.actions
func (c *ActionConsumer) Start(ctx context.Context) error {
	c.log.Info(logger.Entry{
		Action:  "action_consumer_starting",
		Message: mq.AdminActionsQueue,
	})

	return c.consumer.Consume(ctx, mq.AdminActionsQueue, consumerName, func(msg amqp091.Delivery) {
		c.handle(ctx, msg)
	})
}

func (c *ActionConsumer) handle(ctx context.Context, msg amqp091.Delivery) {
	if id, ok := msg.Headers["request_id"].(string); ok {
		ctx = logger.WithRequestID(ctx, id)
	}

	var action domain.Action
	if err := json.Unmarshal(msg.Body, &action); err != nil {
		c.log.WithContext(ctx).Error(logger.Entry{
			Action:  "admin_action_unmarshal_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]any{
				"routing_key": msg.RoutingKey,
			},
		})
		_ = msg.Nack(false, false) // dead letter queue
		return
	}

	if _, err := c.record.Execute(ctx, action); err != nil {
		if errors.Is(err, domain.ErrInvalidAction) {
			c.log.WithContext(ctx).Warn(logger.Entry{
				Action:     "admin_action_rejected",
				Message:    err.Error(),
				ResourceID: action.ResourceID,
			})
			_ = msg.Nack(false, false)
			return
		}

		c.log.WithContext(ctx).Error(logger.Entry{
			Action:     "admin_action_store_failed",
			Message:    err.Error(),
			ResourceID: action.ResourceID,
			Error:      &logger.ErrObj{Msg: err.Error()},
		})
		_ = msg.Nack(false, true) // requeue
		return
	}

	_ = msg.Ack(false)
}
