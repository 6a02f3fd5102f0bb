package in

import (
	"context"

	"guideadmin/internal/dashboard/domain"
)

// ListUsersUseCase — пользователи платформы
type ListUsersUseCase interface {
	Execute(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.User], error)
}

// ListBookingsUseCase — все брони
type ListBookingsUseCase interface {
	Execute(ctx context.Context) ([]domain.Booking, error)
}
