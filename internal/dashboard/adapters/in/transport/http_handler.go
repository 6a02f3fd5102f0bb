package transport

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"guideadmin/internal/dashboard/application/ports/in"
	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/dashboard/viewstate"
	"guideadmin/internal/shared/auth"
	"guideadmin/internal/shared/logger"

	"github.com/gorilla/csrf"
)

const maxBodySize = 64 << 10 // 64KB

// UseCases — всё, что вызывают экраны дашборда
type UseCases struct {
	Login               in.LoginUseCase
	Overview            in.GetOverviewUseCase
	Analytics           in.GetAnalyticsUseCase
	ListGuides          in.ListGuidesUseCase
	SetGuideSuspension  in.SetGuideSuspensionUseCase
	ListRequests        in.ListRequestsUseCase
	GetRequest          in.GetRequestUseCase
	ReviewRequest       in.ReviewRequestUseCase
	ListUsers           in.ListUsersUseCase
	ListBookings        in.ListBookingsUseCase
	ListContacts        in.ListContactsUseCase
	UpdateContactStatus in.UpdateContactStatusUseCase
	ListReports         in.ListReportsUseCase
	UpdateReportStatus  in.UpdateReportStatusUseCase
}

// Views — состояние экранов, по одному хранилищу на экран
type Views struct {
	Analytics *viewstate.Store[domain.Analytics]
	Guides    *viewstate.Store[domain.Guide]
	Requests  *viewstate.Store[domain.Guide]
	Users     *viewstate.Store[domain.User]
	Bookings  *viewstate.Store[domain.Booking]
	Contacts  *viewstate.Store[domain.ContactMessage]
	Reports   *viewstate.Store[domain.GuideReport]
}

// NewViews создает хранилища; состояние сессии без обращений живёт ttl
func NewViews(ttl time.Duration) *Views {
	return &Views{
		Analytics: viewstate.New[domain.Analytics](ttl),
		Guides:    viewstate.New[domain.Guide](ttl),
		Requests:  viewstate.New[domain.Guide](ttl),
		Users:     viewstate.New[domain.User](ttl),
		Bookings:  viewstate.New[domain.Booking](ttl),
		Contacts:  viewstate.New[domain.ContactMessage](ttl),
		Reports:   viewstate.New[domain.GuideReport](ttl),
	}
}

// All — для периодической чистки и logout
func (v *Views) All() []viewstate.Sweeper {
	return []viewstate.Sweeper{v.Analytics, v.Guides, v.Requests, v.Users, v.Bookings, v.Contacts, v.Reports}
}

// Drop удаляет состояние всех экранов сессии
func (v *Views) Drop(key string) {
	for _, s := range v.All() {
		s.Drop(key)
	}
}

// HTTPHandler обрабатывает HTTP запросы дашборда
type HTTPHandler struct {
	uc     UseCases
	views  *Views
	render *Renderer
	flash  *FlashStore
	cookie SessionCookie
	log    *logger.Logger
}

// NewHTTPHandler создает новый HTTP handler
func NewHTTPHandler(
	uc UseCases,
	views *Views,
	render *Renderer,
	flash *FlashStore,
	cookie SessionCookie,
	log *logger.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		uc:     uc,
		views:  views,
		render: render,
		flash:  flash,
		cookie: cookie,
		log:    log,
	}
}

// RegisterRoutes регистрирует все HTTP маршруты. liveSearch может быть nil.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux, liveSearch http.Handler) {
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.Handle("GET /static/", http.StripPrefix("/static/", Static()))

	mux.HandleFunc("GET /login", h.handleLoginPage)
	mux.HandleFunc("POST /login", h.handleLogin)
	mux.HandleFunc("POST /logout", h.handleLogout)

	mux.HandleFunc("GET /{$}", h.handleOverview)
	mux.HandleFunc("GET /analytics", h.handleAnalytics)
	mux.HandleFunc("GET /analytics/data", h.handleAnalyticsData)

	mux.HandleFunc("GET /guides", h.handleGuides)
	mux.HandleFunc("POST /guides/{id}/suspension", h.handleGuideSuspension)
	mux.HandleFunc("GET /guide-requests", h.handleGuideRequests)
	mux.HandleFunc("GET /guide-requests/{id}", h.handleGuideRequest)
	mux.HandleFunc("POST /guide-requests/{id}/review", h.handleReviewRequest)

	mux.HandleFunc("GET /users", h.handleUsers)
	mux.HandleFunc("GET /bookings", h.handleBookings)

	mux.HandleFunc("GET /contacts", h.handleContacts)
	mux.HandleFunc("POST /contacts/{id}/status", h.handleContactStatus)
	mux.HandleFunc("GET /reports", h.handleReports)
	mux.HandleFunc("POST /reports/{id}/status", h.handleReportStatus)

	if liveSearch != nil {
		mux.Handle("GET "+liveSearchPath, liveSearch)
	}
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok","service":"dashboard"}`))
}

// view — общие данные layout
type view struct {
	Title     string
	Active    string
	User      *auth.Claims
	Flashes   []Flash
	CSRFField template.HTML
	CSRFToken string
	Error     string
	Data      any
}

// newView собирает данные layout; забирает тосты, поэтому вызывать до записи ответа
func (h *HTTPHandler) newView(w http.ResponseWriter, r *http.Request, title, active string) view {
	return view{
		Title:     title,
		Active:    active,
		User:      auth.ClaimsFrom(r.Context()),
		Flashes:   h.flash.Pop(w, r),
		CSRFField: csrf.TemplateField(r),
		CSRFToken: csrf.Token(r),
	}
}

func (h *HTTPHandler) page(w http.ResponseWriter, r *http.Request, status int, name string, v view) {
	if err := h.render.Page(w, status, name, v); err != nil {
		h.log.WithContext(r.Context()).Error(logger.Entry{
			Action:  "render_page_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]any{
				"page": name,
			},
		})
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// sessionKey — ключ состояния экранов текущей сессии
func sessionKey(r *http.Request) string {
	if c := auth.ClaimsFrom(r.Context()); c != nil {
		return c.SessionKey()
	}
	return "anonymous"
}

// backendSessionExpired: бэкенд отверг токен (401) — сессия дашборда
// бесполезна, выходим и отправляем на /login.
func (h *HTTPHandler) backendSessionExpired(w http.ResponseWriter, r *http.Request, err error) bool {
	be, ok := backendUnauthorized(err)
	if !ok {
		return false
	}

	h.log.WithContext(r.Context()).Warn(logger.Entry{
		Action:  "backend_session_expired",
		Message: be.Message,
	})
	h.views.Drop(sessionKey(r))
	h.cookie.Clear(w)

	if wantsJSON(r) {
		respondJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: "Session expired, please sign in again"})
		return true
	}
	h.flash.Add(w, r, FlashError, "Session expired, please sign in again")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}

// backendUnauthorized — бэкенд отверг токен сессии (401)
func backendUnauthorized(err error) (*domain.BackendError, bool) {
	var be *domain.BackendError
	if !errors.As(err, &be) || be.Status != http.StatusUnauthorized {
		return nil, false
	}
	return be, true
}

// envelope — тот же формат, что у бэкенда
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// errorStatus — HTTP статус ответа дашборда для ошибки use case
func errorStatus(err error) int {
	var be *domain.BackendError
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidAction),
		errors.Is(err, domain.ErrInvalidYear):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &be):
		if be.Status >= 400 && be.Status < 500 {
			return be.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}
