package usecase

import (
	"context"
	"io"
	"sync"

	"guideadmin/internal/dashboard/application/ports/out"
	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/shared/auth"
	"guideadmin/internal/shared/logger"
)

func testLogger() *logger.Logger {
	return logger.NewWriterLogger("test", io.Discard)
}

type fakeAuth struct {
	res   *out.LoginResult
	err   error
	calls int
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (*out.LoginResult, error) {
	f.calls++
	return f.res, f.err
}

type fakeMinter struct {
	got auth.Identity
}

func (f *fakeMinter) Mint(id auth.Identity) (string, error) {
	f.got = id
	return "session-token", nil
}

type fakeInsights struct {
	years []int
	err   error
}

func (f *fakeInsights) Overview(context.Context) (*domain.Overview, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Overview{Metrics: domain.Metrics{TotalUsers: 3}}, nil
}

func (f *fakeInsights) Analytics(_ context.Context, year int) (*domain.Analytics, error) {
	f.years = append(f.years, year)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Analytics{Year: year}, nil
}

type fakeGuides struct {
	page       *domain.Page[domain.Guide]
	requests   []domain.Guide
	gotQuery   domain.ListQuery
	gotAction  string
	gotID      domain.ID
	mutateMsg  string
	err        error
	mutateErrs error
}

func (f *fakeGuides) ListGuides(_ context.Context, q domain.ListQuery) (*domain.Page[domain.Guide], error) {
	f.gotQuery = q
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func (f *fakeGuides) SetSuspension(_ context.Context, id domain.ID, action string) (string, error) {
	f.gotID, f.gotAction = id, action
	return f.mutateMsg, f.mutateErrs
}

func (f *fakeGuides) ListRequests(context.Context) ([]domain.Guide, error) {
	return f.requests, f.err
}

func (f *fakeGuides) GetRequest(_ context.Context, id domain.ID) (*domain.Guide, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Guide{ID: id}, nil
}

func (f *fakeGuides) ReviewRequest(_ context.Context, id domain.ID, action string) (string, error) {
	f.gotID, f.gotAction = id, action
	return f.mutateMsg, f.mutateErrs
}

type fakeTickets struct {
	gotID     domain.ID
	gotStatus string
	err       error
	calls     int
}

func (f *fakeTickets) ListContacts(context.Context) ([]domain.ContactMessage, error) {
	return nil, f.err
}

func (f *fakeTickets) UpdateContactStatus(_ context.Context, id domain.ID, status string) (string, error) {
	f.calls++
	f.gotID, f.gotStatus = id, status
	return "", f.err
}

func (f *fakeTickets) ListReports(_ context.Context, page int) (*domain.Page[domain.GuideReport], error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Page[domain.GuideReport]{TotalPages: 4}, nil
}

func (f *fakeTickets) UpdateReportStatus(_ context.Context, id domain.ID, status string) (string, error) {
	f.calls++
	f.gotID, f.gotStatus = id, status
	return "Report updated", f.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.AdminAction
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, a domain.AdminAction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, a)
	return f.err
}
