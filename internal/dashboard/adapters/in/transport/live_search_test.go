package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/shared/auth"
	"guideadmin/internal/shared/logger"
	"guideadmin/internal/shared/ws"

	"github.com/gorilla/websocket"
)

func dialLiveSearch(t *testing.T, fg *fakeGuides, withSession bool) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	_, _, conn, resp, err := dialLiveSearchApp(t, fg, withSession)
	return conn, resp, err
}

// dialLiveSearchApp — то же, плюс приложение и claims сессии для проверок view state
func dialLiveSearchApp(t *testing.T, fg *fakeGuides, withSession bool) (*testApp, *auth.Claims, *websocket.Conn, *http.Response, error) {
	t.Helper()

	app := newTestApp(t, UseCases{ListGuides: fg})
	log := logger.NewWriterLogger("test", io.Discard)
	render, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := ws.NewHub(SessionPrincipal, "", log)
	ls := NewLiveSearch(hub, fg, nil, app.views, render, log)
	ls.quiet = 50 * time.Millisecond
	go hub.Run(ctx)
	app.mux.Handle("GET "+liveSearchPath, ls)

	srv := httptest.NewServer(app.handler)
	t.Cleanup(srv.Close)

	header := http.Header{}
	var claims *auth.Claims
	if withSession {
		var cookie *http.Cookie
		cookie, claims = app.login(t)
		header.Set("Cookie", cookie.String())
	}
	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+liveSearchPath, header)
	if conn != nil {
		t.Cleanup(func() { _ = conn.Close() })
	}
	return app, claims, conn, resp, err
}

func searchOnce(t *testing.T, conn *websocket.Conn, q string) searchResult {
	t.Helper()
	msg := map[string]any{"type": "search", "data": map[string]any{"view": "guides", "search": q}}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var res searchResult
	if err := conn.ReadJSON(&res); err != nil {
		t.Fatalf("read: %v", err)
	}
	return res
}

func TestLiveSearchDebouncesKeystrokes(t *testing.T) {
	fg := &fakeGuides{results: []guidesResult{{page: guides("5", "6")}}}
	conn, _, err := dialLiveSearch(t, fg, true)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	for _, q := range []string{"k", "ka", "kam"} {
		msg := map[string]any{
			"type": "search",
			"data": map[string]any{"view": "guides", "search": q, "page": 1, "limit": 10},
		}
		if err := conn.WriteJSON(msg); err != nil {
			t.Fatalf("write: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var res searchResult
	if err := conn.ReadJSON(&res); err != nil {
		t.Fatalf("read: %v", err)
	}
	if res.Type != "rows" || res.Search != "kam" {
		t.Fatalf("result = %+v", res)
	}
	if n := strings.Count(res.HTML, "<tr data-id="); n != 2 {
		t.Fatalf("rows in html = %d, want 2", n)
	}

	time.Sleep(150 * time.Millisecond)
	calls := fg.calls()
	if len(calls) != 1 {
		t.Fatalf("backend calls = %d, want 1", len(calls))
	}
	if calls[0].Search != "kam" {
		t.Fatalf("search = %q, want kam", calls[0].Search)
	}
}

func TestLiveSearchErrorKeepsRows(t *testing.T) {
	fg := &fakeGuides{results: []guidesResult{
		{page: guides("1")},
		{err: &domain.BackendError{Status: 500, Message: "X"}},
	}}
	conn, _, err := dialLiveSearch(t, fg, true)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	if res := searchOnce(t, conn, "a"); res.Type != "rows" {
		t.Fatalf("first result = %+v", res)
	}
	res := searchOnce(t, conn, "ab")
	if res.Type != "error" || res.Message != "X" {
		t.Fatalf("second result = %+v", res)
	}
}

func TestLiveSearchBackendUnauthorizedExpiresSession(t *testing.T) {
	fg := &fakeGuides{results: []guidesResult{
		{page: guides("1")},
		{err: &domain.BackendError{Status: http.StatusUnauthorized, Message: "jwt expired"}},
	}}
	app, claims, conn, _, err := dialLiveSearchApp(t, fg, true)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	if res := searchOnce(t, conn, "a"); res.Type != "rows" {
		t.Fatalf("first result = %+v", res)
	}
	if !app.views.Guides.Snapshot(claims.SessionKey()).Loaded {
		t.Fatalf("guides view not loaded after search")
	}

	res := searchOnce(t, conn, "ab")
	if res.Type != "expired" {
		t.Fatalf("result = %+v, want expired", res)
	}
	if res.Location != "/guides" {
		t.Fatalf("location = %q, want /guides", res.Location)
	}
	if app.views.Guides.Snapshot(claims.SessionKey()).Loaded {
		t.Fatalf("view state kept after backend 401")
	}
}

func TestLiveSearchRequiresSession(t *testing.T) {
	_, resp, err := dialLiveSearch(t, &fakeGuides{results: []guidesResult{{page: guides()}}}, false)
	if err == nil {
		t.Fatalf("dial without session should fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("response = %+v, want 401", resp)
	}
}
