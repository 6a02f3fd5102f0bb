package usecase

import (
	"context"
	"fmt"

	"guideadmin/internal/dashboard/application/ports/in"
	"guideadmin/internal/dashboard/application/ports/out"
	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/shared/logger"
)

// ListContactsService реализует ListContactsUseCase
type ListContactsService struct {
	gateway out.TicketGateway
	log     *logger.Logger
}

// NewListContactsService создает сервис списка обращений
func NewListContactsService(gateway out.TicketGateway, log *logger.Logger) *ListContactsService {
	return &ListContactsService{gateway: gateway, log: log}
}

func (s *ListContactsService) Execute(ctx context.Context) ([]domain.ContactMessage, error) {
	msgs, err := s.gateway.ListContacts(ctx)
	if err != nil {
		s.log.WithContext(ctx).Error(logger.Entry{
			Action:  "list_contacts_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, err
	}
	return msgs, nil
}

// ListReportsService реализует ListReportsUseCase
type ListReportsService struct {
	gateway out.TicketGateway
	log     *logger.Logger
}

// NewListReportsService создает сервис списка жалоб
func NewListReportsService(gateway out.TicketGateway, log *logger.Logger) *ListReportsService {
	return &ListReportsService{gateway: gateway, log: log}
}

func (s *ListReportsService) Execute(ctx context.Context, page int) (*domain.Page[domain.GuideReport], error) {
	if page < 1 {
		page = 1
	}
	reports, err := s.gateway.ListReports(ctx, page)
	if err != nil {
		s.log.WithContext(ctx).Error(logger.Entry{
			Action:  "list_reports_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]any{
				"page": page,
			},
		})
		return nil, err
	}
	if reports.CurrentPage == 0 {
		reports.CurrentPage = page
	}
	return reports, nil
}

// statusUpdater — общая логика смены статуса обращения/жалобы
type statusUpdater struct {
	resource string
	update   func(ctx context.Context, id domain.ID, status string) (string, error)
	recorder actionRecorder
	log      *logger.Logger
}

// Execute запрашивает смену статуса. Новый статус не вычисляется:
// в ответе ровно тот статус, который отправили, и только после успеха.
func (u statusUpdater) Execute(ctx context.Context, input in.UpdateStatusInput) (*in.UpdateStatusOutput, error) {
	if input.ID == "" {
		return nil, domain.ErrInvalidID
	}
	if !domain.IsValidTicketStatus(input.Status) {
		return nil, domain.ErrInvalidStatus
	}

	msg, err := u.update(ctx, input.ID, input.Status)
	if err != nil {
		u.log.WithContext(ctx).Error(logger.Entry{
			Action:     u.resource + "_status_update_failed",
			Message:    err.Error(),
			ResourceID: input.ID.String(),
			Error:      &logger.ErrObj{Msg: err.Error()},
		})
		return nil, err
	}

	u.log.WithContext(ctx).Info(logger.Entry{
		Action:     u.resource + "_status_updated",
		Message:    fmt.Sprintf("%s %s -> %s", u.resource, input.ID, input.Status),
		ResourceID: input.ID.String(),
	})
	u.recorder.record(ctx, "status_update", u.resource, input.ID, input.Status)

	if msg == "" {
		msg = fmt.Sprintf("Status updated to %s", input.Status)
	}
	return &in.UpdateStatusOutput{ID: input.ID, Status: input.Status, Message: msg}, nil
}

// UpdateContactStatusService реализует UpdateContactStatusUseCase
type UpdateContactStatusService struct{ statusUpdater }

func NewUpdateContactStatusService(gateway out.TicketGateway, publisher out.ActionPublisher, log *logger.Logger) *UpdateContactStatusService {
	return &UpdateContactStatusService{statusUpdater{
		resource: domain.ResourceContact,
		update:   gateway.UpdateContactStatus,
		recorder: newActionRecorder(publisher, log),
		log:      log,
	}}
}

// UpdateReportStatusService реализует UpdateReportStatusUseCase
type UpdateReportStatusService struct{ statusUpdater }

func NewUpdateReportStatusService(gateway out.TicketGateway, publisher out.ActionPublisher, log *logger.Logger) *UpdateReportStatusService {
	return &UpdateReportStatusService{statusUpdater{
		resource: domain.ResourceReport,
		update:   gateway.UpdateReportStatus,
		recorder: newActionRecorder(publisher, log),
		log:      log,
	}}
}
