package usecase

import (
	"context"

	"guideadmin/internal/audit/application/ports/out"
	"guideadmin/internal/audit/domain"
	"guideadmin/internal/shared/logger"
)

// ListActionsService реализует ListActionsUseCase
type ListActionsService struct {
	repo out.ActionRepository
	log  *logger.Logger
}

func NewListActionsService(repo out.ActionRepository, log *logger.Logger) *ListActionsService {
	return &ListActionsService{repo: repo, log: log}
}

// Execute возвращает окно журнала, новые записи первыми
func (s *ListActionsService) Execute(ctx context.Context, page domain.Page) ([]domain.Action, error) {
	page, err := page.Normalize()
	if err != nil {
		return nil, err
	}

	actions, err := s.repo.List(ctx, page)
	if err != nil {
		s.log.WithContext(ctx).Error(logger.Entry{
			Action:  "list_admin_actions_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, err
	}
	if actions == nil {
		actions = []domain.Action{}
	}
	return actions, nil
}
