package transport

import (
	"net/http"
	"strings"

	"guideadmin/internal/shared/auth"
	"guideadmin/internal/shared/logger"
	"guideadmin/internal/shared/utils"
)

// SessionValidator — проверка токена сессии дашборда
type SessionValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// RequestID проставляет X-Request-ID в контекст и ответ
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" || len(id) > 64 {
			id = utils.NewRequestID()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}

// AdminAuthMiddleware проверяет Bearer токен сессии и роль админа.
// Пустая adminRole пускает любую валидную сессию.
func AdminAuthMiddleware(sessions SessionValidator, adminRole string, log *logger.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			clog := log.WithContext(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				clog.Warn(logger.Entry{
					Action:  "audit_auth_missing_header",
					Message: "missing authorization header",
				})
				respondError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				clog.Warn(logger.Entry{
					Action:  "audit_auth_invalid_format",
					Message: "invalid authorization header format",
				})
				respondError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := sessions.Validate(token)
			if err != nil {
				clog.Warn(logger.Entry{
					Action:  "audit_session_invalid",
					Message: err.Error(),
				})
				respondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			if adminRole != "" && !strings.EqualFold(claims.Role, adminRole) {
				clog.Warn(logger.Entry{
					Action:  "audit_auth_forbidden",
					Message: "insufficient permissions",
					Additional: map[string]any{
						"user_id": claims.UserID,
						"role":    claims.Role,
					},
				})
				respondError(w, http.StatusForbidden, "admin role required")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
		}
	}
}
