package auth

import (
	"errors"
	"fmt"
	"time"

	"guideadmin/internal/shared/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "guideme-admin"

// ErrInvalidSession — токен отсутствует, подделан или истёк
var ErrInvalidSession = errors.New("invalid session")

// Identity — то, что бэкенд вернул при логине
type Identity struct {
	UserID       string
	Email        string
	Name         string
	Role         string
	BackendToken string
}

// Claims — содержимое cookie-сессии админа
type Claims struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	BackendToken string `json:"jwt"` // токен бэкенда, пробрасывается в каждый запрос к API
	jwt.RegisteredClaims
}

// SessionService подписывает и проверяет токен сессии
type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService создает сервис сессий
func NewSessionService(cfg config.SessionConfig) *SessionService {
	ttl := time.Duration(cfg.ExpiryMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL — время жизни сессии (и cookie)
func (s *SessionService) TTL() time.Duration { return s.ttl }

// Mint создает подписанный токен сессии для identity
func (s *SessionService) Mint(id Identity) (string, error) {
	if id.UserID == "" {
		return "", fmt.Errorf("mint session: empty user id")
	}
	now := s.now()

	claims := &Claims{
		UserID:       id.UserID,
		Email:        id.Email,
		Name:         id.Name,
		Role:         id.Role,
		BackendToken: id.BackendToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate проверяет подпись и срок жизни, возвращает claims
func (s *SessionService) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidSession
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidSession
	}

	return claims, nil
}

// Identity восстанавливает Identity из claims
func (c *Claims) Identity() Identity {
	return Identity{
		UserID:       c.UserID,
		Email:        c.Email,
		Name:         c.Name,
		Role:         c.Role,
		BackendToken: c.BackendToken,
	}
}

// DisplayName — имя для приветствия, email если имени нет
func (c *Claims) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Email
}

// SessionKey — ключ in-memory состояния экранов этой сессии (jti)
func (c *Claims) SessionKey() string {
	if c.ID != "" {
		return c.ID
	}
	return c.UserID
}
