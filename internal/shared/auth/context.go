package auth

import "context"

type contextKey string

const claimsKey contextKey = "session_claims"

// ContextWithClaims кладёт claims сессии в контекст запроса
func ContextWithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFrom возвращает claims из контекста, nil если гейт их не положил
func ClaimsFrom(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsKey).(*Claims)
	return c
}

// BackendToken — токен бэкенда текущей сессии, "" если сессии нет
func BackendToken(ctx context.Context) string {
	if c := ClaimsFrom(ctx); c != nil {
		return c.BackendToken
	}
	return ""
}
