package transport

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"guideadmin/internal/dashboard/application/ports/in"
	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/dashboard/viewstate"

	"github.com/gorilla/csrf"
)

// rowsView — данные фрагмента строк таблицы (страница и live search)
type rowsView struct {
	Items     any
	Loaded    bool
	CSRFField template.HTML
	ReturnTo  string
}

type pageLink struct {
	Num     int
	URL     string
	Current bool
}

type pager struct {
	Links   []pageLink
	PrevURL string
	NextURL string
	Total   int
}

type listData struct {
	Rows  rowsView
	Query domain.ListQuery
	Meta  viewstate.Meta
	Pager pager
}

// load — общая схема экранов-списков: успех заменяет список,
// ошибка оставляет прежний и выставляет текст ошибки.
func load[T any](store *viewstate.Store[T], key string, page *domain.Page[T], err error, fallback string) viewstate.Snapshot[T] {
	if err != nil {
		return store.Fail(key, domain.UserMessage(err, fallback))
	}
	return store.Replace(key, page.Items, viewstate.Meta{
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
		CurrentPage: page.CurrentPage,
	})
}

// pageOf оборачивает непагинированный список
func pageOf[T any](items []T, err error) (*domain.Page[T], error) {
	if err != nil {
		return nil, err
	}
	return &domain.Page[T]{Items: items, TotalItems: len(items), TotalPages: 1, CurrentPage: 1}, nil
}

func rows[T any](r *http.Request, snap viewstate.Snapshot[T]) rowsView {
	return rowsView{
		Items:     snap.Items,
		Loaded:    snap.Loaded,
		CSRFField: csrf.TemplateField(r),
		ReturnTo:  r.URL.RequestURI(),
	}
}

func parseListQuery(r *http.Request) domain.ListQuery {
	q := r.URL.Query()
	return domain.ListQuery{
		Page:      atoi(q.Get("page")),
		Limit:     atoi(q.Get("limit")),
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Fields:    q.Get("fields"),
	}.Normalize()
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// newPager — ссылки на страницы с сохранением остальных параметров запроса
func newPager(r *http.Request, current, total int) pager {
	if total <= 1 {
		return pager{Total: total}
	}
	link := func(n int) string {
		q := r.URL.Query()
		q.Set("page", strconv.Itoa(n))
		return (&url.URL{Path: r.URL.Path, RawQuery: q.Encode()}).String()
	}
	p := pager{Total: total}
	for n := 1; n <= total; n++ {
		p.Links = append(p.Links, pageLink{Num: n, URL: link(n), Current: n == current})
	}
	if current > 1 {
		p.PrevURL = link(current - 1)
	}
	if current < total {
		p.NextURL = link(current + 1)
	}
	return p
}

// handleOverview обрабатывает GET /
func (h *HTTPHandler) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.uc.Overview.Execute(r.Context())
	if err != nil && h.backendSessionExpired(w, r, err) {
		return
	}

	v := h.newView(w, r, "Dashboard", "overview")
	if err != nil {
		v.Error = domain.UserMessage(err, "Failed to fetch dashboard data")
	}
	v.Data = overview
	h.page(w, r, http.StatusOK, "overview", v)
}

type analyticsRow struct {
	Month    string
	Users    int
	Guides   int
	Bookings int
}

type analyticsData struct {
	Years     []int
	Year      int
	Analytics *domain.Analytics
	Rows      []analyticsRow
}

// analyticsRows сводит три ряда в таблицу по месяцам (порядок рядов бэкенда)
func analyticsRows(a *domain.Analytics) []analyticsRow {
	if a == nil {
		return nil
	}
	n := max(len(a.UserGrowth.Data), len(a.GuideGrowth.Data), len(a.BookingGrowth.Data))
	out := make([]analyticsRow, n)
	for i := 0; i < n; i++ {
		if i < len(a.UserGrowth.Data) {
			out[i].Month = a.UserGrowth.Data[i].Month
			out[i].Users = a.UserGrowth.Data[i].Users
		}
		if i < len(a.GuideGrowth.Data) {
			if out[i].Month == "" {
				out[i].Month = a.GuideGrowth.Data[i].Month
			}
			out[i].Guides = a.GuideGrowth.Data[i].Users
		}
		if i < len(a.BookingGrowth.Data) {
			if out[i].Month == "" {
				out[i].Month = a.BookingGrowth.Data[i].Month
			}
			out[i].Bookings = a.BookingGrowth.Data[i].Bookings
		}
	}
	return out
}

// handleAnalytics обрабатывает GET /analytics?year=YYYY
func (h *HTTPHandler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	years := h.uc.Analytics.Years()
	year := atoi(r.URL.Query().Get("year"))
	if year == 0 && len(years) > 0 {
		year = years[0]
	}

	a, err := h.uc.Analytics.Execute(r.Context(), year)
	if err != nil && h.backendSessionExpired(w, r, err) {
		return
	}

	key := sessionKey(r)
	var snap viewstate.Snapshot[domain.Analytics]
	if err != nil {
		snap = h.views.Analytics.Fail(key, domain.UserMessage(err, "Failed to fetch analytics data"))
	} else {
		snap = h.views.Analytics.Replace(key, []domain.Analytics{*a}, viewstate.Meta{})
	}

	data := analyticsData{Years: years, Year: year}
	if len(snap.Items) > 0 {
		// после ошибки остаётся прошлый год: селектор показывает его же
		data.Analytics = &snap.Items[0]
		data.Rows = analyticsRows(data.Analytics)
		if data.Analytics.Year != 0 {
			data.Year = data.Analytics.Year
		}
	}

	v := h.newView(w, r, "Analytics", "analytics")
	v.Error = snap.Err
	v.Data = data
	h.page(w, r, http.StatusOK, "analytics", v)
}

// handleAnalyticsData обрабатывает GET /analytics/data?year=YYYY (JSON для графиков)
func (h *HTTPHandler) handleAnalyticsData(w http.ResponseWriter, r *http.Request) {
	a, err := h.uc.Analytics.Execute(r.Context(), atoi(r.URL.Query().Get("year")))
	if err != nil {
		if h.backendSessionExpired(w, r, err) {
			return
		}
		respondJSON(w, errorStatus(err), envelope{Success: false, Message: domain.UserMessage(err, "Failed to fetch analytics data")})
		return
	}
	h.views.Analytics.Replace(sessionKey(r), []domain.Analytics{*a}, viewstate.Meta{})
	respondJSON(w, http.StatusOK, envelope{Success: true, Data: a})
}

// handleGuides обрабатывает GET /guides
func (h *HTTPHandler) handleGuides(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)
	page, err := h.uc.ListGuides.Execute(r.Context(), q)
	if err != nil && h.backendSessionExpired(w, r, err) {
		return
	}
	snap := load(h.views.Guides, sessionKey(r), page, err, "Failed to fetch guides")

	v := h.newView(w, r, "Guides", "guides")
	v.Error = snap.Err
	v.Data = listData{
		Rows:  rows(r, snap),
		Query: q,
		Meta:  snap.Meta,
		Pager: newPager(r, q.Page, snap.Meta.TotalPages),
	}
	h.page(w, r, http.StatusOK, "guides", v)
}

type requestsData struct {
	Rows   rowsView
	Search string
	Sort   string
}

// handleGuideRequests обрабатывает GET /guide-requests
func (h *HTTPHandler) handleGuideRequests(w http.ResponseWriter, r *http.Request) {
	input := in.ListRequestsInput{
		Search: r.URL.Query().Get("search"),
		Sort:   r.URL.Query().Get("sort"),
	}
	if input.Sort == "" {
		input.Sort = "newest"
	}

	items, err := h.uc.ListRequests.Execute(r.Context(), input)
	page, err := pageOf(items, err)
	if err != nil && h.backendSessionExpired(w, r, err) {
		return
	}
	snap := load(h.views.Requests, sessionKey(r), page, err, "Failed to fetch guide requests")

	v := h.newView(w, r, "Guide Requests", "guide_requests")
	v.Error = snap.Err
	v.Data = requestsData{Rows: rows(r, snap), Search: input.Search, Sort: input.Sort}
	h.page(w, r, http.StatusOK, "guide_requests", v)
}

// handleGuideRequest обрабатывает GET /guide-requests/{id}
func (h *HTTPHandler) handleGuideRequest(w http.ResponseWriter, r *http.Request) {
	guide, err := h.uc.GetRequest.Execute(r.Context(), domain.ID(r.PathValue("id")))
	if err != nil && h.backendSessionExpired(w, r, err) {
		return
	}

	status := http.StatusOK
	v := h.newView(w, r, "Guide Request", "guide_requests")
	if err != nil {
		v.Error = domain.UserMessage(err, "Failed to fetch guide request")
		var be *domain.BackendError
		if errors.As(err, &be) && be.Status == http.StatusNotFound {
			status = http.StatusNotFound
		}
	}
	v.Data = guide
	h.page(w, r, status, "guide_request", v)
}

// handleUsers обрабатывает GET /users
func (h *HTTPHandler) handleUsers(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)
	page, err := h.uc.ListUsers.Execute(r.Context(), q)
	if err != nil && h.backendSessionExpired(w, r, err) {
		return
	}
	snap := load(h.views.Users, sessionKey(r), page, err, "Failed to fetch users")

	v := h.newView(w, r, "Users", "users")
	v.Error = snap.Err
	v.Data = listData{
		Rows:  rows(r, snap),
		Query: q,
		Meta:  snap.Meta,
		Pager: newPager(r, q.Page, snap.Meta.TotalPages),
	}
	h.page(w, r, http.StatusOK, "users", v)
}

type bookingsData struct {
	Loaded bool
	Total  int
	Groups domain.BookingGroups
}

// handleBookings обрабатывает GET /bookings
func (h *HTTPHandler) handleBookings(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.ListBookings.Execute(r.Context())
	page, err := pageOf(items, err)
	if err != nil && h.backendSessionExpired(w, r, err) {
		return
	}
	snap := load(h.views.Bookings, sessionKey(r), page, err, "Failed to fetch bookings")

	v := h.newView(w, r, "Bookings", "bookings")
	v.Error = snap.Err
	v.Data = bookingsData{
		Loaded: snap.Loaded,
		Total:  len(snap.Items),
		Groups: domain.GroupByTravelStatus(snap.Items),
	}
	h.page(w, r, http.StatusOK, "bookings", v)
}

// handleContacts обрабатывает GET /contacts
func (h *HTTPHandler) handleContacts(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.ListContacts.Execute(r.Context())
	page, err := pageOf(items, err)
	if err != nil && h.backendSessionExpired(w, r, err) {
		return
	}
	snap := load(h.views.Contacts, sessionKey(r), page, err, "Failed to fetch contact messages")

	v := h.newView(w, r, "Contact Messages", "contacts")
	v.Error = snap.Err
	v.Data = listData{Rows: rows(r, snap), Meta: snap.Meta}
	h.page(w, r, http.StatusOK, "contacts", v)
}

// handleReports обрабатывает GET /reports?page=N
func (h *HTTPHandler) handleReports(w http.ResponseWriter, r *http.Request) {
	n := atoi(r.URL.Query().Get("page"))
	if n < 1 {
		n = 1
	}
	page, err := h.uc.ListReports.Execute(r.Context(), n)
	if err != nil && h.backendSessionExpired(w, r, err) {
		return
	}
	snap := load(h.views.Reports, sessionKey(r), page, err, "Failed to fetch guide reports")

	v := h.newView(w, r, "Guide Reports", "reports")
	v.Error = snap.Err
	v.Data = listData{
		Rows:  rows(r, snap),
		Meta:  snap.Meta,
		Pager: newPager(r, n, snap.Meta.TotalPages),
	}
	h.page(w, r, http.StatusOK, "reports", v)
}
