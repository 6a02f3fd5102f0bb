package usecase

import (
	"context"

	"guideadmin/internal/dashboard/application/ports/out"
	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/shared/logger"
)

// ListUsersService реализует ListUsersUseCase
type ListUsersService struct {
	gateway out.UserGateway
	log     *logger.Logger
}

// NewListUsersService создает сервис списка пользователей
func NewListUsersService(gateway out.UserGateway, log *logger.Logger) *ListUsersService {
	return &ListUsersService{gateway: gateway, log: log}
}

// Execute загружает страницу пользователей
func (s *ListUsersService) Execute(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.User], error) {
	q = q.Normalize()

	page, err := s.gateway.ListUsers(ctx, q)
	if err != nil {
		s.log.WithContext(ctx).Error(logger.Entry{
			Action:  "list_users_failed",
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

// ListBookingsService реализует ListBookingsUseCase
type ListBookingsService struct {
	gateway out.BookingGateway
	log     *logger.Logger
}

// NewListBookingsService создает сервис списка броней
func NewListBookingsService(gateway out.BookingGateway, log *logger.Logger) *ListBookingsService {
	return &ListBookingsService{gateway: gateway, log: log}
}

func (s *ListBookingsService) Execute(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.gateway.ListBookings(ctx)
	if err != nil {
		s.log.WithContext(ctx).Error(logger.Entry{
			Action:  "list_bookings_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, err
	}
	return bookings, nil
}
