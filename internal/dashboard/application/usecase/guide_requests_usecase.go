package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"guideadmin/internal/dashboard/application/ports/in"
	"guideadmin/internal/dashboard/application/ports/out"
	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/shared/logger"
)

// ListRequestsService реализует ListRequestsUseCase
type ListRequestsService struct {
	gateway out.GuideGateway
	log     *logger.Logger
}

// NewListRequestsService создает сервис списка заявок
func NewListRequestsService(gateway out.GuideGateway, log *logger.Logger) *ListRequestsService {
	return &ListRequestsService{gateway: gateway, log: log}
}

// Execute загружает заявки и фильтрует их по имени/email.
// Бэкенд не умеет искать по заявкам, поэтому поиск и сортировка здесь.
func (s *ListRequestsService) Execute(ctx context.Context, input in.ListRequestsInput) ([]domain.Guide, error) {
	all, err := s.gateway.ListRequests(ctx)
	if err != nil {
		s.log.WithContext(ctx).Error(logger.Entry{
			Action:  "list_guide_requests_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, err
	}

	filtered := make([]domain.Guide, 0, len(all))
	for _, g := range all {
		if g.MatchesSearch(input.Search) {
			filtered = append(filtered, g)
		}
	}

	// createdAt в ISO 8601, строковое сравнение сохраняет порядок
	switch strings.ToLower(input.Sort) {
	case "oldest":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].CreatedAt < filtered[j].CreatedAt })
	case "newest":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].CreatedAt > filtered[j].CreatedAt })
	}

	return filtered, nil
}

// GetRequestService реализует GetRequestUseCase
type GetRequestService struct {
	gateway out.GuideGateway
	log     *logger.Logger
}

// NewGetRequestService создает сервис карточки заявки
func NewGetRequestService(gateway out.GuideGateway, log *logger.Logger) *GetRequestService {
	return &GetRequestService{gateway: gateway, log: log}
}

// Execute загружает одну заявку
func (s *GetRequestService) Execute(ctx context.Context, id domain.ID) (*domain.Guide, error) {
	if id == "" {
		return nil, domain.ErrInvalidID
	}
	guide, err := s.gateway.GetRequest(ctx, id)
	if err != nil {
		s.log.WithContext(ctx).Error(logger.Entry{
			Action:     "get_guide_request_failed",
			Message:    err.Error(),
			ResourceID: id.String(),
			Error:      &logger.ErrObj{Msg: err.Error()},
		})
		return nil, err
	}
	return guide, nil
}

// ReviewRequestService реализует ReviewRequestUseCase
type ReviewRequestService struct {
	gateway  out.GuideGateway
	recorder actionRecorder
	log      *logger.Logger
}

// NewReviewRequestService создает сервис решения по заявке
func NewReviewRequestService(gateway out.GuideGateway, publisher out.ActionPublisher, log *logger.Logger) *ReviewRequestService {
	return &ReviewRequestService{
		gateway:  gateway,
		recorder: newActionRecorder(publisher, log),
		log:      log,
	}
}

// Execute принимает (accept) или отклоняет (reject) заявку
func (s *ReviewRequestService) Execute(ctx context.Context, input in.ReviewRequestInput) (string, error) {
	if input.RequestID == "" {
		return "", domain.ErrInvalidID
	}
	if !domain.IsValidReview(input.Action) {
		return "", domain.ErrInvalidAction
	}

	msg, err := s.gateway.ReviewRequest(ctx, input.RequestID, input.Action)
	if err != nil {
		s.log.WithContext(ctx).Error(logger.Entry{
			Action:     "guide_request_review_failed",
			Message:    err.Error(),
			ResourceID: input.RequestID.String(),
			Error:      &logger.ErrObj{Msg: err.Error()},
		})
		return "", err
	}

	s.log.WithContext(ctx).Info(logger.Entry{
		Action:     "guide_request_reviewed",
		Message:    fmt.Sprintf("request %s: %s", input.RequestID, input.Action),
		ResourceID: input.RequestID.String(),
	})
	s.recorder.record(ctx, "review", domain.ResourceGuideRequest, input.RequestID, input.Action)

	if msg == "" {
		if input.Action == domain.ReviewAccept {
			msg = "Guide request accepted successfully!"
		} else {
			msg = "Guide request rejected"
		}
	}
	return msg, nil
}
