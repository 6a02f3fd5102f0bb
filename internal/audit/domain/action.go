package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Лимиты выдачи журнала
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

var (
	// ErrInvalidAction событие без обязательных полей
	ErrInvalidAction = errors.New("invalid admin action")
	// ErrInvalidPage отрицательный offset или limit
	ErrInvalidPage = errors.New("invalid page")
)

// actionNamespace — пространство имён для детерминированных id событий
var actionNamespace = uuid.MustParse("6b1f7c4e-3f55-4c7a-9a55-0d3c6f2e8a11")

// Action — запись журнала: кто, что и над чем сделал в дашборде
type Action struct {
	ID         uuid.UUID `json:"id"`
	ActorID    string    `json:"actor_id"`
	ActorEmail string    `json:"actor_email"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id"`
	Value      string    `json:"value"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Validate проверяет обязательные поля
func (a *Action) Validate() error {
	switch {
	case strings.TrimSpace(a.ActorID) == "":
		return errors.Join(ErrInvalidAction, errors.New("actor_id is required"))
	case strings.TrimSpace(a.Action) == "":
		return errors.Join(ErrInvalidAction, errors.New("action is required"))
	case strings.TrimSpace(a.Resource) == "":
		return errors.Join(ErrInvalidAction, errors.New("resource is required"))
	case strings.TrimSpace(a.ResourceID) == "":
		return errors.Join(ErrInvalidAction, errors.New("resource_id is required"))
	case a.OccurredAt.IsZero():
		return errors.Join(ErrInvalidAction, errors.New("occurred_at is required"))
	}
	return nil
}

// DeriveID — один и тот же id для повторной доставки одного события.
// Повтор сообщения из очереди не создаёт вторую запись.
func (a *Action) DeriveID() uuid.UUID {
	key := strings.Join([]string{
		a.ActorID,
		a.Action,
		a.Resource,
		a.ResourceID,
		a.Value,
		a.RequestID,
		a.OccurredAt.UTC().Format(time.RFC3339Nano),
	}, "|")
	return uuid.NewSHA1(actionNamespace, []byte(key))
}

// Page — окно выдачи журнала
type Page struct {
	Limit  int
	Offset int
}

// Normalize подставляет лимит по умолчанию и обрезает слишком большой
func (p Page) Normalize() (Page, error) {
	if p.Limit < 0 || p.Offset < 0 {
		return p, ErrInvalidPage
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p, nil
}
