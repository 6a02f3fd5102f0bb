package in

import (
	"context"

	"guideadmin/internal/dashboard/domain"
)

// UpdateStatusInput — смена статуса обращения или жалобы
type UpdateStatusInput struct {
	ID     domain.ID
	Status string
}

// UpdateStatusOutput — то, что нужно скопировать в строку таблицы
type UpdateStatusOutput struct {
	ID      domain.ID `json:"id"`
	Status  string    `json:"status"`
	Message string    `json:"message"`
}

// ListContactsUseCase — сообщения обратной связи
type ListContactsUseCase interface {
	Execute(ctx context.Context) ([]domain.ContactMessage, error)
}

// UpdateContactStatusUseCase — смена статуса сообщения
type UpdateContactStatusUseCase interface {
	Execute(ctx context.Context, input UpdateStatusInput) (*UpdateStatusOutput, error)
}

// ListReportsUseCase — жалобы на гидов постранично
type ListReportsUseCase interface {
	Execute(ctx context.Context, page int) (*domain.Page[domain.GuideReport], error)
}

// UpdateReportStatusUseCase — смена статуса жалобы
type UpdateReportStatusUseCase interface {
	Execute(ctx context.Context, input UpdateStatusInput) (*UpdateStatusOutput, error)
}
