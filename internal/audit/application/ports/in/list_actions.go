package in

import (
	"context"

	"guideadmin/internal/audit/domain"
)

// ListActionsUseCase — последние действия, новые сверху
type ListActionsUseCase interface {
	Execute(ctx context.Context, page domain.Page) ([]domain.Action, error)
}
