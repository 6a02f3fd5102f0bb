package in

import (
	"context"

	"guideadmin/internal/audit/domain"
)

// RecordActionUseCase — сохранить событие из очереди
type RecordActionUseCase interface {
	Execute(ctx context.Context, action domain.Action) (*domain.Action, error)
}
