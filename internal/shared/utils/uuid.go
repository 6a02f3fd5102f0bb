package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewUUID генерирует новый UUID v4
func NewUUID() string {
	return uuid.New().String()
}

// NewRequestID — короткий correlation id для X-Request-ID
func NewRequestID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
