package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnavailable бэкенд недоступен (сеть, DNS, таймаут, не-JSON ответ)
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrInvalidCredentials пустой email или пароль
	ErrInvalidCredentials = errors.New("email and password are required")

	// ErrInvalidID пустой или некорректный идентификатор
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidStatus статус вне pending | in-progress | resolved
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidAction неизвестное действие (suspend/unblock, accept/reject)
	ErrInvalidAction = errors.New("invalid action")

	// ErrInvalidYear год аналитики вне допустимого диапазона
	ErrInvalidYear = errors.New("invalid year")

	// ErrUnauthorized нет сессии в контексте
	ErrUnauthorized = errors.New("unauthorized")
)

// BackendError — бизнес-ошибка бэкенда: success=false или HTTP статус >= 400.
// Message показывается админу как есть; пустой — только статус, без текста бэкенда.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Message)
}

// UserMessage — текст для тоста/баннера
func UserMessage(err error, fallback string) string {
	var be *BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	switch {
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidAction),
		errors.Is(err, ErrInvalidYear),
		errors.Is(err, ErrInvalidID):
		return err.Error()
	}
	return fallback
}
