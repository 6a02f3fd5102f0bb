package usecase

import (
	"context"
	"time"

	"guideadmin/internal/dashboard/application/ports/out"
	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/shared/logger"
)

// yearsBack — сколько прошлых лет доступно в селекторе аналитики
const yearsBack = 5

// GetOverviewService реализует GetOverviewUseCase
type GetOverviewService struct {
	gateway out.InsightsGateway
	log     *logger.Logger
}

// NewGetOverviewService создает сервис главной страницы
func NewGetOverviewService(gateway out.InsightsGateway, log *logger.Logger) *GetOverviewService {
	return &GetOverviewService{gateway: gateway, log: log}
}

// Execute загружает метрики и последние заявки
func (s *GetOverviewService) Execute(ctx context.Context) (*domain.Overview, error) {
	overview, err := s.gateway.Overview(ctx)
	if err != nil {
		s.log.WithContext(ctx).Error(logger.Entry{
			Action:  "get_overview_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, err
	}
	return overview, nil
}

// GetAnalyticsService реализует GetAnalyticsUseCase
type GetAnalyticsService struct {
	gateway out.InsightsGateway
	log     *logger.Logger
	now     func() time.Time
}

// NewGetAnalyticsService создает сервис аналитики
func NewGetAnalyticsService(gateway out.InsightsGateway, log *logger.Logger) *GetAnalyticsService {
	return &GetAnalyticsService{gateway: gateway, log: log, now: time.Now}
}

// Years — текущий год и пять предыдущих, по убыванию
func (s *GetAnalyticsService) Years() []int {
	current := s.now().Year()
	years := make([]int, 0, yearsBack+1)
	for i := 0; i <= yearsBack; i++ {
		years = append(years, current-i)
	}
	return years
}

// Execute — ровно один запрос к бэкенду на выбранный год.
// Все агрегаты считает бэкенд; здесь только проверка года.
func (s *GetAnalyticsService) Execute(ctx context.Context, year int) (*domain.Analytics, error) {
	if year == 0 {
		year = s.now().Year()
	}
	if year < 2000 || year > s.now().Year()+1 {
		return nil, domain.ErrInvalidYear
	}

	analytics, err := s.gateway.Analytics(ctx, year)
	if err != nil {
		s.log.WithContext(ctx).Error(logger.Entry{
			Action:  "get_analytics_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]any{
				"year": year,
			},
		})
		return nil, err
	}
	return analytics, nil
}
