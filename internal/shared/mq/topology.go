package mq

import (
	"context"
	"fmt"

	"guideadmin/internal/shared/logger"
)

const (
	// AdminExchange — topic exchange для событий админских действий
	AdminExchange = "admin_topic"
	// AdminActionsQueue — очередь журнала действий (audit service)
	AdminActionsQueue = "admin.actions"
	// AdminActionPrefix — routing key: admin.action.<resource>
	AdminActionPrefix = "admin.action."
)

// SetupTopology объявляет exchange, очередь журнала и binding (идемпотентно)
func SetupTopology(ctx context.Context, mq *RabbitMQ, log *logger.Logger) error {
	ch := mq.Channel()
	if ch == nil {
		return fmt.Errorf("rabbitmq channel not available")
	}

	if err := ch.ExchangeDeclare(
		AdminExchange, // name
		"topic",       // type
		true,          // durable
		false,         // auto-deleted
		false,         // internal
		false,         // no-wait
		nil,           // args
	); err != nil {
		return fmt.Errorf("declare %s: %w", AdminExchange, err)
	}

	if _, err := ch.QueueDeclare(AdminActionsQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", AdminActionsQueue, err)
	}
	if err := ch.QueueBind(AdminActionsQueue, AdminActionPrefix+"#", AdminExchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", AdminActionsQueue, err)
	}

	log.Info(logger.Entry{
		Action:  "topology_setup_complete",
		Message: fmt.Sprintf("%s -> %s", AdminExchange, AdminActionsQueue),
	})

	return nil
}
