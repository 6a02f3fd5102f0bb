package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"guideadmin/internal/dashboard/application/ports/in"
	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/shared/auth"
	"guideadmin/internal/shared/config"
	"guideadmin/internal/shared/logger"
)

const testCookie = "gmn_admin_session"

type loginFunc func(context.Context, in.LoginInput) (*in.LoginOutput, error)

func (f loginFunc) Execute(ctx context.Context, i in.LoginInput) (*in.LoginOutput, error) {
	return f(ctx, i)
}

type overviewFunc func(context.Context) (*domain.Overview, error)

func (f overviewFunc) Execute(ctx context.Context) (*domain.Overview, error) { return f(ctx) }

type fakeAnalytics struct {
	mu    sync.Mutex
	years []int
	err   error
}

func (f *fakeAnalytics) Execute(_ context.Context, year int) (*domain.Analytics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.years = append(f.years, year)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Analytics{
		Year:          year,
		UserGrowth:    domain.Series{Data: []domain.MonthPoint{{Month: "Jan", Users: 4}}, GrowthPercentage: "12.5%"},
		GuideGrowth:   domain.Series{Data: []domain.MonthPoint{{Month: "Jan", Users: 2}}, GrowthPercentage: "3%"},
		BookingGrowth: domain.Series{Data: []domain.MonthPoint{{Month: "Jan", Bookings: 9}}, GrowthPercentage: "40%"},
	}, nil
}

func (f *fakeAnalytics) Years() []int { return []int{2025, 2024, 2023, 2022, 2021, 2020} }

// fakeGuides отдаёт ответы по очереди; последний повторяется
type fakeGuides struct {
	mu      sync.Mutex
	results []guidesResult
	queries []domain.ListQuery
}

type guidesResult struct {
	page *domain.Page[domain.Guide]
	err  error
}

func (f *fakeGuides) Execute(_ context.Context, q domain.ListQuery) (*domain.Page[domain.Guide], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	i := len(f.queries) - 1
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	return f.results[i].page, f.results[i].err
}

func (f *fakeGuides) calls() []domain.ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ListQuery(nil), f.queries...)
}

type suspensionFunc func(context.Context, in.SetGuideSuspensionInput) (string, error)

func (f suspensionFunc) Execute(ctx context.Context, i in.SetGuideSuspensionInput) (string, error) {
	return f(ctx, i)
}

type reviewFunc func(context.Context, in.ReviewRequestInput) (string, error)

func (f reviewFunc) Execute(ctx context.Context, i in.ReviewRequestInput) (string, error) {
	return f(ctx, i)
}

type contactsFunc func(context.Context) ([]domain.ContactMessage, error)

func (f contactsFunc) Execute(ctx context.Context) ([]domain.ContactMessage, error) { return f(ctx) }

type reportsFunc func(context.Context, int) (*domain.Page[domain.GuideReport], error)

func (f reportsFunc) Execute(ctx context.Context, page int) (*domain.Page[domain.GuideReport], error) {
	return f(ctx, page)
}

type statusFunc func(context.Context, in.UpdateStatusInput) (*in.UpdateStatusOutput, error)

func (f statusFunc) Execute(ctx context.Context, i in.UpdateStatusInput) (*in.UpdateStatusOutput, error) {
	return f(ctx, i)
}

type testApp struct {
	handler  http.Handler
	sessions *auth.SessionService
	views    *Views
	mux      *http.ServeMux
}

func newTestApp(t *testing.T, uc UseCases) *testApp {
	t.Helper()

	log := logger.NewWriterLogger("test", io.Discard)
	render, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error: %v", err)
	}

	sessions := auth.NewSessionService(config.SessionConfig{Secret: "test-secret", ExpiryMinutes: 60})
	cookie := SessionCookie{Name: testCookie, TTL: time.Hour}
	views := NewViews(time.Hour)

	h := NewHTTPHandler(uc, views, render, NewFlashStore("test-secret", false, log), cookie, log)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux, nil)

	return &testApp{
		handler:  Chain(mux, RequestID(log), Gate(sessions, cookie, []string{"/"}, log)),
		sessions: sessions,
		views:    views,
		mux:      mux,
	}
}

func (a *testApp) login(t *testing.T) (*http.Cookie, *auth.Claims) {
	t.Helper()
	token, err := a.sessions.Mint(auth.Identity{
		UserID:       "1",
		Email:        "admin@guideme.np",
		Name:         "Admin",
		Role:         "admin",
		BackendToken: "backend-jwt",
	})
	if err != nil {
		t.Fatalf("Mint() error: %v", err)
	}
	claims, err := a.sessions.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	return &http.Cookie{Name: testCookie, Value: token}, claims
}

func (a *testApp) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil), cookie)
}

func postForm(path, form string, asJSON bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if asJSON {
		req.Header.Set("Accept", "application/json")
	}
	return req
}

func guides(ids ...string) *domain.Page[domain.Guide] {
	p := &domain.Page[domain.Guide]{TotalPages: 1, CurrentPage: 1}
	for _, id := range ids {
		p.Items = append(p.Items, domain.Guide{ID: domain.ID(id), FullName: "Guide " + id, Email: id + "@x.np"})
	}
	return p
}
