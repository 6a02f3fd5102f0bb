package in

import (
	"context"

	"guideadmin/internal/shared/auth"
)

// LoginInput — данные формы входа
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput — подписанный токен сессии и данные админа
type LoginOutput struct {
	SessionToken string
	Identity     auth.Identity
	Message      string
}

// LoginUseCase — обмен учётных данных на сессию
type LoginUseCase interface {
	Execute(ctx context.Context, input LoginInput) (*LoginOutput, error)
}
