package usecase

import (
	"context"
	"time"

	"guideadmin/internal/dashboard/application/ports/out"
	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/shared/auth"
	"guideadmin/internal/shared/logger"
)

// actionRecorder публикует событие после успешной мутации.
// Ошибка публикации только логируется: действие на бэкенде уже выполнено.
type actionRecorder struct {
	publisher out.ActionPublisher
	log       *logger.Logger
	now       func() time.Time
}

func newActionRecorder(publisher out.ActionPublisher, log *logger.Logger) actionRecorder {
	return actionRecorder{publisher: publisher, log: log, now: time.Now}
}

func (r actionRecorder) record(ctx context.Context, action, resource string, id domain.ID, value string) {
	if r.publisher == nil {
		return
	}

	event := domain.AdminAction{
		Action:     action,
		Resource:   resource,
		ResourceID: id.String(),
		Value:      value,
		RequestID:  logger.RequestIDFrom(ctx),
		OccurredAt: r.now().UTC(),
	}
	if c := auth.ClaimsFrom(ctx); c != nil {
		event.ActorID = c.UserID
		event.ActorEmail = c.Email
	}

	if err := r.publisher.Publish(ctx, event); err != nil {
		r.log.WithContext(ctx).Warn(logger.Entry{
			Action:     "admin_action_publish_failed",
			Message:    err.Error(),
			ResourceID: id.String(),
			Additional: map[string]any{
				"resource": resource,
				"action":   action,
			},
		})
	}
}
