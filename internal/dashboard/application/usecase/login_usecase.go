package usecase

import (
	"context"
	"fmt"
	"strings"

	"guideadmin/internal/dashboard/application/ports/in"
	"guideadmin/internal/dashboard/application/ports/out"
	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/shared/auth"
	"guideadmin/internal/shared/logger"
)

// SessionMinter — подпись токена сессии
type SessionMinter interface {
	Mint(id auth.Identity) (string, error)
}

// LoginService реализует LoginUseCase
type LoginService struct {
	gateway  out.AuthGateway
	sessions SessionMinter
	log      *logger.Logger
}

// NewLoginService создает сервис входа
func NewLoginService(gateway out.AuthGateway, sessions SessionMinter, log *logger.Logger) *LoginService {
	return &LoginService{
		gateway:  gateway,
		sessions: sessions,
		log:      log,
	}
}

// Execute обменивает email+пароль на сессию. Повторов нет:
// ошибка бэкенда возвращается как есть, чтобы показать её админу.
func (s *LoginService) Execute(ctx context.Context, input in.LoginInput) (*in.LoginOutput, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	res, err := s.gateway.Login(ctx, email, input.Password)
	if err != nil {
		s.log.WithContext(ctx).Warn(logger.Entry{
			Action:  "admin_login_failed",
			Message: err.Error(),
			Additional: map[string]any{
				"email": email,
			},
		})
		return nil, err
	}

	identity := auth.Identity{
		UserID:       res.UserID,
		Email:        res.Email,
		Name:         res.Name,
		Role:         res.Role,
		BackendToken: res.Token,
	}

	token, err := s.sessions.Mint(identity)
	if err != nil {
		return nil, fmt.Errorf("mint session: %w", err)
	}

	s.log.WithContext(ctx).Info(logger.Entry{
		Action:  "admin_logged_in",
		Message: fmt.Sprintf("admin %s signed in", identity.Email),
		Additional: map[string]any{
			"user_id": identity.UserID,
			"role":    identity.Role,
		},
	})

	return &in.LoginOutput{
		SessionToken: token,
		Identity:     identity,
		Message:      res.Message,
	}, nil
}
