package domain

import "strings"

const (
	DefaultLimit  = 10
	MaxLimit      = 100
	DefaultSortBy = "createdAt"
	SortDesc      = "DESC"
	SortAsc       = "ASC"
)

// ListQuery — параметры загрузки списка, передаются бэкенду как есть
type ListQuery struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
	Fields    string
}

// Normalize подставляет значения по умолчанию. Корректность пагинации
// остаётся на бэкенде, здесь только защита от мусора в query string.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	if q.SortBy == "" {
		q.SortBy = DefaultSortBy
	}
	switch strings.ToUpper(q.SortOrder) {
	case SortAsc:
		q.SortOrder = SortAsc
	default:
		q.SortOrder = SortDesc
	}
	return q
}

// Page — одна страница коллекции с метаданными пагинации бэкенда
type Page[T any] struct {
	Items       []T
	TotalPages  int
	TotalItems  int
	CurrentPage int
}
