package out

import (
	"context"

	"guideadmin/internal/dashboard/domain"
)

// ActionPublisher — отправка событий об успешных мутациях в журнал
type ActionPublisher interface {
	Publish(ctx context.Context, action domain.AdminAction) error
}
