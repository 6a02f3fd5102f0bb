package transport

import (
	"crypto/sha256"
	"net/http"
	"net/url"
	"strings"
	"time"

	"guideadmin/internal/shared/auth"
	"guideadmin/internal/shared/logger"
	"guideadmin/internal/shared/utils"

	"github.com/gorilla/csrf"
)

const (
	headerRequestID = "X-Request-ID"
	headerCSRF      = "X-CSRF-Token"
	csrfCookieName  = "gmn_csrf"
	liveSearchPath  = "/ws/search"
)

// publicPaths открыты без сессии при любых настройках гейта
var publicPaths = []string{"/login", "/health", "/static/"}

// SessionValidator — проверка токена сессии
type SessionValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// SessionCookie — cookie с токеном сессии
type SessionCookie struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

func (c SessionCookie) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c SessionCookie) Read(r *http.Request) string {
	ck, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return ck.Value
}

// Middleware — обёртка http.Handler
type Middleware func(http.Handler) http.Handler

// Chain применяет middleware так, что первый в списке выполняется первым
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// RequestID проставляет X-Request-ID (входящий или новый) в контекст и ответ
func RequestID(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerRequestID)
			if id == "" || len(id) > 64 {
				id = utils.NewRequestID()
			}
			w.Header().Set(headerRequestID, id)

			ctx := logger.WithRequestID(r.Context(), id)
			log.WithContext(ctx).Debug(logger.Entry{
				Action:  "http_request",
				Message: r.Method + " " + r.URL.Path,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Gate пропускает на защищённые пути только с валидной сессией.
// Без сессии страницы уходят на /login, JSON и websocket получают 401.
// Валидная сессия кладётся в контекст на любом пути.
func Gate(sessions SessionValidator, cookie SessionCookie, protected []string, log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookie.Read(r)

			var claims *auth.Claims
			if token != "" {
				c, err := sessions.Validate(token)
				if err != nil {
					log.WithContext(r.Context()).Warn(logger.Entry{
						Action:  "session_rejected",
						Message: err.Error(),
						Additional: map[string]any{
							"path": r.URL.Path,
						},
					})
					cookie.Clear(w)
				} else {
					claims = c
				}
			}

			if claims != nil {
				next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
				return
			}

			if !isProtected(r.URL.Path, protected) {
				next.ServeHTTP(w, r)
				return
			}

			if wantsJSON(r) || r.URL.Path == liveSearchPath {
				respondJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: "unauthorized"})
				return
			}
			http.Redirect(w, r, "/login?callbackUrl="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
		})
	}
}

// isProtected — путь закрыт гейтом: совпадает с префиксом и не публичный
func isProtected(path string, prefixes []string) bool {
	for _, p := range publicPaths {
		if path == p || (strings.HasSuffix(p, "/") && strings.HasPrefix(path, p)) {
			return false
		}
	}
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// CSRF — gorilla/csrf поверх всех форм и JSON действий. Ключ выводится
// из секрета сессии: одна переменная окружения на оба механизма.
func CSRF(secret string, secure bool, log *logger.Logger) Middleware {
	key := sha256.Sum256([]byte("csrf:" + secret))
	return csrf.Protect(key[:],
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName(csrfCookieName),
		csrf.RequestHeader(headerCSRF),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reason := "unknown"
			if err := csrf.FailureReason(r); err != nil {
				reason = err.Error()
			}
			log.WithContext(r.Context()).Warn(logger.Entry{
				Action:  "csrf_rejected",
				Message: reason,
				Additional: map[string]any{
					"path": r.URL.Path,
				},
			})
			if wantsJSON(r) {
				respondJSON(w, http.StatusForbidden, envelope{Success: false, Message: "Your session form expired, reload the page"})
				return
			}
			http.Error(w, "forbidden: invalid csrf token", http.StatusForbidden)
		})),
	)
}

// wantsJSON — запрос из скрипта страницы
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
