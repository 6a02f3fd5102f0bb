package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"time"

	"guideadmin/internal/dashboard/application/ports/in"
	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/dashboard/viewstate"
	"guideadmin/internal/shared/auth"
	"guideadmin/internal/shared/debounce"
	"guideadmin/internal/shared/logger"
	"guideadmin/internal/shared/ws"

	"github.com/gorilla/csrf"
)

// Views with live search
const (
	searchGuides = "guides"
	searchUsers  = "users"
)

type csrfFieldKey struct{}

// searchRequest — {"type":"search","data":{...}}
type searchRequest struct {
	View      string `json:"view"`
	Search    string `json:"search"`
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
	ReturnTo  string `json:"return_to"`
}

// searchResult — ответ клиенту: готовые строки таблицы или ошибка
type searchResult struct {
	Type       string `json:"type"` // rows | error | expired
	View       string `json:"view"`
	Search     string `json:"search"`
	HTML       string `json:"html,omitempty"`
	TotalPages int    `json:"totalPages,omitempty"`
	Message    string `json:"message,omitempty"`
	// Location — куда перейти браузеру при expired: обычная страница
	// списка сама завершит сессию и отправит на /login
	Location string `json:"location,omitempty"`
}

// LiveSearch — поиск по спискам гидов и пользователей через WebSocket.
// Каждое нажатие клавиши приходит сообщением; запрос к бэкенду уходит
// только после паузы debounce.SearchQuiet с последнего сообщения.
type LiveSearch struct {
	hub    *ws.Hub
	guides in.ListGuidesUseCase
	users  in.ListUsersUseCase
	views  *Views
	render *Renderer
	log    *logger.Logger

	quiet   time.Duration
	mu      sync.Mutex
	pending map[string]*debounce.Debouncer
}

// NewLiveSearch создает live search и вешает обработчики на хаб
func NewLiveSearch(hub *ws.Hub, guides in.ListGuidesUseCase, users in.ListUsersUseCase, views *Views, render *Renderer, log *logger.Logger) *LiveSearch {
	s := &LiveSearch{
		hub:     hub,
		guides:  guides,
		users:   users,
		views:   views,
		render:  render,
		log:     log,
		quiet:   debounce.SearchQuiet,
		pending: make(map[string]*debounce.Debouncer),
	}
	hub.SetMessageHandler(s.handleMessage)
	hub.SetDisconnectHandler(s.handleDisconnect)
	return s
}

// SessionPrincipal — AuthFunc хаба: сессию уже проверил гейт
func SessionPrincipal(r *http.Request) (ws.Principal, error) {
	c := auth.ClaimsFrom(r.Context())
	if c == nil {
		return ws.Principal{}, domain.ErrUnauthorized
	}
	ctx := context.WithoutCancel(r.Context())
	ctx = context.WithValue(ctx, csrfFieldKey{}, csrf.TemplateField(r))
	return ws.Principal{UserID: c.UserID, Role: c.Role, Ctx: ctx}, nil
}

func (s *LiveSearch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.hub.ServeWS(w, r)
}

func (s *LiveSearch) handleMessage(c *ws.Client, msgType string, data json.RawMessage) error {
	if msgType != "search" {
		return fmt.Errorf("unknown message type %q", msgType)
	}

	var req searchRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("decode search: %w", err)
	}
	if req.View != searchGuides && req.View != searchUsers {
		return fmt.Errorf("live search not supported for %q", req.View)
	}

	s.debouncer(c.ID + ":" + req.View).Trigger(func() { s.run(c, req) })
	return nil
}

func (s *LiveSearch) debouncer(key string) *debounce.Debouncer {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.pending[key]
	if !ok {
		d = debounce.New(s.quiet)
		s.pending[key] = d
	}
	return d
}

func (s *LiveSearch) handleDisconnect(c *ws.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := c.ID + ":"
	for key, d := range s.pending {
		if strings.HasPrefix(key, prefix) {
			d.Stop()
			delete(s.pending, key)
		}
	}
}

// run — один запрос к бэкенду для последнего введённого значения
func (s *LiveSearch) run(c *ws.Client, req searchRequest) {
	ctx := c.Context()
	q := domain.ListQuery{
		Page:      req.Page,
		Limit:     req.Limit,
		Search:    req.Search,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}.Normalize()

	key := "anonymous"
	if claims := auth.ClaimsFrom(ctx); claims != nil {
		key = claims.SessionKey()
	}
	field, _ := ctx.Value(csrfFieldKey{}).(template.HTML)
	returnTo := backTo(req.ReturnTo, "/"+req.View)

	var (
		partial string
		view    rowsView
		meta    viewstate.Meta
		errMsg  string
	)
	switch req.View {
	case searchGuides:
		page, err := s.guides.Execute(ctx, q)
		if s.expired(c, req, key, returnTo, err) {
			return
		}
		snap := load(s.views.Guides, key, page, err, "Failed to fetch guides")
		partial, errMsg, meta = "guide_rows", snap.Err, snap.Meta
		view = rowsView{Items: snap.Items, Loaded: snap.Loaded, CSRFField: field, ReturnTo: returnTo}
	case searchUsers:
		page, err := s.users.Execute(ctx, q)
		if s.expired(c, req, key, returnTo, err) {
			return
		}
		snap := load(s.views.Users, key, page, err, "Failed to fetch users")
		partial, errMsg, meta = "user_rows", snap.Err, snap.Meta
		view = rowsView{Items: snap.Items, Loaded: snap.Loaded, CSRFField: field, ReturnTo: returnTo}
	}

	if errMsg != "" {
		s.send(c, searchResult{Type: "error", View: req.View, Search: q.Search, Message: errMsg})
		return
	}

	var buf bytes.Buffer
	if err := s.render.Partial(&buf, partial, view); err != nil {
		s.log.WithContext(ctx).Error(logger.Entry{
			Action:  "live_search_render_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return
	}
	s.send(c, searchResult{
		Type:       "rows",
		View:       req.View,
		Search:     q.Search,
		HTML:       buf.String(),
		TotalPages: meta.TotalPages,
	})
}

// expired: бэкенд отверг токен. View state сессии сбрасывается,
// клиент получает expired и уходит со страницы.
func (s *LiveSearch) expired(c *ws.Client, req searchRequest, key, returnTo string, err error) bool {
	be, ok := backendUnauthorized(err)
	if !ok {
		return false
	}

	s.log.WithContext(c.Context()).Warn(logger.Entry{
		Action:  "backend_session_expired",
		Message: be.Message,
		Additional: map[string]any{
			"client_id": c.ID,
			"view":      req.View,
		},
	})
	s.views.Drop(key)
	s.send(c, searchResult{
		Type:     "expired",
		View:     req.View,
		Search:   req.Search,
		Message:  "Session expired, please sign in again",
		Location: returnTo,
	})
	return true
}

func (s *LiveSearch) send(c *ws.Client, res searchResult) {
	if err := c.SendJSON(res); err != nil {
		s.log.WithContext(c.Context()).Debug(logger.Entry{
			Action:  "live_search_send_skipped",
			Message: err.Error(),
		})
	}
}
