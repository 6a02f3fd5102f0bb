package in

import (
	"context"

	"guideadmin/internal/dashboard/domain"
)

// ListGuidesUseCase — список гидов с поиском, сортировкой и пагинацией
type ListGuidesUseCase interface {
	Execute(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.Guide], error)
}

// SetGuideSuspensionInput — блокировка / разблокировка гида
type SetGuideSuspensionInput struct {
	GuideID domain.ID
	Action  string // suspended | active
}

// SetGuideSuspensionUseCase — после успеха список перезагружается целиком
type SetGuideSuspensionUseCase interface {
	Execute(ctx context.Context, input SetGuideSuspensionInput) (string, error)
}

// ListRequestsInput — фильтр заявок (на стороне дашборда)
type ListRequestsInput struct {
	Search string
	Sort   string // newest | oldest
}

// ListRequestsUseCase — заявки гидов на регистрацию
type ListRequestsUseCase interface {
	Execute(ctx context.Context, input ListRequestsInput) ([]domain.Guide, error)
}

// GetRequestUseCase — детальная карточка заявки
type GetRequestUseCase interface {
	Execute(ctx context.Context, id domain.ID) (*domain.Guide, error)
}

// ReviewRequestInput — решение по заявке
type ReviewRequestInput struct {
	RequestID domain.ID
	Action    string // accept | reject
}

// ReviewRequestUseCase — принять или отклонить заявку
type ReviewRequestUseCase interface {
	Execute(ctx context.Context, input ReviewRequestInput) (string, error)
}
