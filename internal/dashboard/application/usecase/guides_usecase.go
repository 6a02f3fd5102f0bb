package usecase

import (
	"context"
	"fmt"

	"guideadmin/internal/dashboard/application/ports/in"
	"guideadmin/internal/dashboard/application/ports/out"
	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/shared/logger"
)

// ListGuidesService реализует ListGuidesUseCase
type ListGuidesService struct {
	gateway out.GuideGateway
	log     *logger.Logger
}

// NewListGuidesService создает сервис списка гидов
func NewListGuidesService(gateway out.GuideGateway, log *logger.Logger) *ListGuidesService {
	return &ListGuidesService{gateway: gateway, log: log}
}

// Execute загружает страницу гидов
func (s *ListGuidesService) Execute(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.Guide], error) {
	q = q.Normalize()

	page, err := s.gateway.ListGuides(ctx, q)
	if err != nil {
		s.log.WithContext(ctx).Error(logger.Entry{
			Action:  "list_guides_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]any{
				"page":   q.Page,
				"search": q.Search,
			},
		})
		return nil, err
	}
	if page.CurrentPage == 0 {
		page.CurrentPage = q.Page
	}
	return page, nil
}

// SetGuideSuspensionService реализует SetGuideSuspensionUseCase
type SetGuideSuspensionService struct {
	gateway  out.GuideGateway
	recorder actionRecorder
	log      *logger.Logger
}

// NewSetGuideSuspensionService создает сервис блокировки гидов
func NewSetGuideSuspensionService(gateway out.GuideGateway, publisher out.ActionPublisher, log *logger.Logger) *SetGuideSuspensionService {
	return &SetGuideSuspensionService{
		gateway:  gateway,
		recorder: newActionRecorder(publisher, log),
		log:      log,
	}
}

// Execute блокирует (suspended) или разблокирует (active) гида
func (s *SetGuideSuspensionService) Execute(ctx context.Context, input in.SetGuideSuspensionInput) (string, error) {
	if input.GuideID == "" {
		return "", domain.ErrInvalidID
	}
	if !domain.IsValidSuspension(input.Action) {
		return "", domain.ErrInvalidAction
	}

	msg, err := s.gateway.SetSuspension(ctx, input.GuideID, input.Action)
	if err != nil {
		s.log.WithContext(ctx).Error(logger.Entry{
			Action:     "guide_suspension_failed",
			Message:    err.Error(),
			ResourceID: input.GuideID.String(),
			Error:      &logger.ErrObj{Msg: err.Error()},
		})
		return "", err
	}

	s.log.WithContext(ctx).Info(logger.Entry{
		Action:     "guide_suspension_changed",
		Message:    fmt.Sprintf("guide %s -> %s", input.GuideID, input.Action),
		ResourceID: input.GuideID.String(),
	})
	s.recorder.record(ctx, "suspension", domain.ResourceGuide, input.GuideID, input.Action)

	if msg == "" {
		msg = "Action performed successfully"
	}
	return msg, nil
}
