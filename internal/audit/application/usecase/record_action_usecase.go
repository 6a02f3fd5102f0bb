package usecase

import (
	"context"
	"fmt"
	"time"

	"guideadmin/internal/audit/application/ports/out"
	"guideadmin/internal/audit/domain"
	"guideadmin/internal/shared/logger"
)

// RecordActionService реализует RecordActionUseCase
type RecordActionService struct {
	repo out.ActionRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewRecordActionService создает сервис записи в журнал
func NewRecordActionService(repo out.ActionRepository, log *logger.Logger) *RecordActionService {
	return &RecordActionService{repo: repo, log: log, now: time.Now}
}

// Execute валидирует событие, выводит id и сохраняет
func (s *RecordActionService) Execute(ctx context.Context, action domain.Action) (*domain.Action, error) {
	if err := action.Validate(); err != nil {
		return nil, err
	}

	action.ID = action.DeriveID()
	action.OccurredAt = action.OccurredAt.UTC()
	action.RecordedAt = s.now().UTC()

	inserted, err := s.repo.Insert(ctx, &action)
	if err != nil {
		return nil, fmt.Errorf("insert admin action: %w", err)
	}

	entry := logger.Entry{
		Action:     "admin_action_recorded",
		Message:    action.Resource + " " + action.Action,
		ResourceID: action.ResourceID,
		Additional: map[string]any{
			"actor_id": action.ActorID,
			"value":    action.Value,
		},
	}
	if !inserted {
		entry.Action = "admin_action_duplicate"
	}
	if action.RequestID != "" {
		ctx = logger.WithRequestID(ctx, action.RequestID)
	}
	s.log.WithContext(ctx).Info(entry)

	return &action, nil
}
