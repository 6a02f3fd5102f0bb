package out

import (
	"context"

	"guideadmin/internal/audit/domain"
)

// ActionRepository — хранилище журнала
type ActionRepository interface {
	// Insert сохраняет запись; повтор того же id игнорируется, inserted=false
	Insert(ctx context.Context, action *domain.Action) (inserted bool, err error)
	List(ctx context.Context, page domain.Page) ([]domain.Action, error)
}
