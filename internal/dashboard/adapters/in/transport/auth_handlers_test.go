package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"guideadmin/internal/dashboard/application/ports/in"
	"guideadmin/internal/dashboard/domain"
)

func TestLoginSetsSessionAndRedirects(t *testing.T) {
	var got in.LoginInput
	app := newTestApp(t, UseCases{Login: loginFunc(func(_ context.Context, i in.LoginInput) (*in.LoginOutput, error) {
		got = i
		return &in.LoginOutput{SessionToken: "signed-token", Message: "Welcome back"}, nil
	})})

	form := url.Values{"email": {" admin@guideme.np "}, "password": {"pw"}, "callbackUrl": {"/reports?page=3"}}
	rec := app.do(postForm("/login", form.Encode(), false), nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/reports?page=3" {
		t.Fatalf("Location = %q", loc)
	}
	if got.Email != "admin@guideme.np" || got.Password != "pw" {
		t.Fatalf("login input = %+v", got)
	}

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie {
			session = c
		}
	}
	if session == nil || session.Value != "signed-token" || !session.HttpOnly {
		t.Fatalf("session cookie = %+v", session)
	}
}

func TestLoginFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"backend message", &domain.BackendError{Status: 401, Message: "Invalid email or password"}, "Invalid email or password"},
		{"network", fmt.Errorf("%w: connection refused", domain.ErrBackendUnavailable), "Authentication failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, UseCases{Login: loginFunc(func(context.Context, in.LoginInput) (*in.LoginOutput, error) {
				return nil, tt.err
			})})

			rec := app.do(postForm("/login", "email=a%40b.np&password=x", false), nil)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			body := rec.Body.String()
			if !strings.Contains(body, tt.want) {
				t.Fatalf("body does not contain %q", tt.want)
			}
			if !strings.Contains(body, `value="a@b.np"`) {
				t.Fatalf("email not kept in form")
			}
		})
	}
}

func TestLoginPageRedirectsSignedIn(t *testing.T) {
	app := newTestApp(t, UseCases{})
	cookie, _ := app.login(t)

	rec := app.get("/login?callbackUrl=%2Fusers", cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/users" {
		t.Fatalf("status = %d location = %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestLogoutDropsViewsAndCookie(t *testing.T) {
	app := newTestApp(t, UseCases{ListGuides: &fakeGuides{results: []guidesResult{{page: guides("1")}}}})
	cookie, claims := app.login(t)
	app.get("/guides", cookie)
	if !app.views.Guides.Snapshot(claims.SessionKey()).Loaded {
		t.Fatalf("guides view should be loaded")
	}

	rec := app.do(postForm("/logout", "", false), cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("status = %d location = %q", rec.Code, rec.Header().Get("Location"))
	}
	if app.views.Guides.Snapshot(claims.SessionKey()).Loaded {
		t.Fatalf("guides view should be dropped on logout")
	}
}
