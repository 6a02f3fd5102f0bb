package out

import (
	"context"

	"guideadmin/internal/dashboard/domain"
)

// LoginResult — ответ POST /admin/login
type LoginResult struct {
	Token   string
	UserID  string
	Email   string
	Name    string
	Role    string
	Message string
}

// AuthGateway — обмен учётных данных на токен бэкенда
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// InsightsGateway — сводка и аналитика
type InsightsGateway interface {
	// Overview — GET /admin/dashboard
	Overview(ctx context.Context) (*domain.Overview, error)

	// Analytics — GET /admin/analytics?year=YYYY
	Analytics(ctx context.Context, year int) (*domain.Analytics, error)
}

// GuideGateway — гиды и заявки на регистрацию
type GuideGateway interface {
	ListGuides(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.Guide], error)

	// SetSuspension — POST /admin/guide-suspension; возвращает сообщение бэкенда
	SetSuspension(ctx context.Context, guideID domain.ID, action string) (string, error)

	ListRequests(ctx context.Context) ([]domain.Guide, error)
	GetRequest(ctx context.Context, id domain.ID) (*domain.Guide, error)

	// ReviewRequest — PATCH /admin/verify-request/{id}
	ReviewRequest(ctx context.Context, id domain.ID, action string) (string, error)
}

// UserGateway — пользователи платформы
type UserGateway interface {
	ListUsers(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.User], error)
}

// BookingGateway — брони (только чтение)
type BookingGateway interface {
	ListBookings(ctx context.Context) ([]domain.Booking, error)
}

// TicketGateway — обращения и жалобы на гидов
type TicketGateway interface {
	ListContacts(ctx context.Context) ([]domain.ContactMessage, error)
	UpdateContactStatus(ctx context.Context, id domain.ID, status string) (string, error)

	ListReports(ctx context.Context, page int) (*domain.Page[domain.GuideReport], error)
	UpdateReportStatus(ctx context.Context, id domain.ID, status string) (string, error)
}
