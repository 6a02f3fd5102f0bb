package in

import (
	"context"

	"guideadmin/internal/dashboard/domain"
)

// GetOverviewUseCase — главная страница
type GetOverviewUseCase interface {
	Execute(ctx context.Context) (*domain.Overview, error)
}

// GetAnalyticsUseCase — три ряда за год одним запросом
type GetAnalyticsUseCase interface {
	Execute(ctx context.Context, year int) (*domain.Analytics, error)
	// Years — доступные для выбора годы: текущий и пять предыдущих
	Years() []int
}
