package transport

import (
	"net/http"
	"strings"

	"guideadmin/internal/dashboard/application/ports/in"
	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/shared/auth"
	"guideadmin/internal/shared/logger"
)

const authFailed = "Authentication failed"

type loginData struct {
	Email       string
	CallbackURL string
}

// handleLoginPage обрабатывает GET /login
func (h *HTTPHandler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	callback := safeCallback(r.URL.Query().Get("callbackUrl"))
	if auth.ClaimsFrom(r.Context()) != nil {
		http.Redirect(w, r, callback, http.StatusSeeOther)
		return
	}

	v := h.newView(w, r, "Sign in", "login")
	v.Data = loginData{CallbackURL: callback}
	h.page(w, r, http.StatusOK, "login", v)
}

// handleLogin обрабатывает POST /login
func (h *HTTPHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	callback := safeCallback(r.PostFormValue("callbackUrl"))

	out, err := h.uc.Login.Execute(r.Context(), in.LoginInput{
		Email:    email,
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		v := h.newView(w, r, "Sign in", "login")
		v.Error = domain.UserMessage(err, authFailed)
		v.Data = loginData{Email: email, CallbackURL: callback}
		h.page(w, r, http.StatusUnauthorized, "login", v)
		return
	}

	h.cookie.Set(w, out.SessionToken)
	msg := out.Message
	if msg == "" {
		msg = "Login successful"
	}
	h.flash.Add(w, r, FlashSuccess, msg)
	http.Redirect(w, r, callback, http.StatusSeeOther)
}

// handleLogout обрабатывает POST /logout
func (h *HTTPHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c := auth.ClaimsFrom(r.Context()); c != nil {
		h.views.Drop(c.SessionKey())
		h.log.WithContext(r.Context()).Info(logger.Entry{
			Action:  "admin_logged_out",
			Message: c.Email,
		})
	}
	h.cookie.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// safeCallback — только локальные пути, иначе "/"
func safeCallback(s string) string {
	if s == "" || !strings.HasPrefix(s, "/") || strings.HasPrefix(s, "//") || strings.HasPrefix(s, "/\\") {
		return "/"
	}
	if strings.HasPrefix(s, "/login") {
		return "/"
	}
	return s
}
