// Package viewstate хранит состояние экранов дашборда в памяти:
// последний успешно загруженный список и текст последней ошибки.
// Состояние живёт per-session, per-view и не переживает рестарт.
package viewstate

import (
	"context"
	"sync"
	"time"
)

// Meta — пагинация последней успешной загрузки
type Meta struct {
	TotalPages  int
	TotalItems  int
	CurrentPage int
}

// Snapshot — копия состояния экрана для рендера
type Snapshot[T any] struct {
	Items  []T
	Meta   Meta
	Err    string
	Loaded bool
}

type entry[T any] struct {
	items   []T
	meta    Meta
	err     string
	loaded  bool
	touched time.Time
}

// Store — состояние одного экрана для всех сессий
type Store[T any] struct {
	mu    sync.Mutex
	views map[string]*entry[T]
	ttl   time.Duration
	now   func() time.Time
}

// New создает хранилище; записи без обращений дольше ttl удаляет Sweep
func New[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		views: make(map[string]*entry[T]),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *Store[T]) get(key string) *entry[T] {
	e, ok := s.views[key]
	if !ok {
		e = &entry[T]{}
		s.views[key] = e
	}
	e.touched = s.now()
	return e
}

// Replace — успешная загрузка: список заменяется целиком, ошибка сбрасывается
func (s *Store[T]) Replace(key string, items []T, meta Meta) Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.get(key)
	e.items = append([]T(nil), items...)
	e.meta = meta
	e.err = ""
	e.loaded = true
	return e.snapshot()
}

// Fail — неудачная загрузка: список не трогаем, запоминаем текст ошибки
func (s *Store[T]) Fail(key, msg string) Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.get(key)
	e.err = msg
	return e.snapshot()
}

// Patch применяет fn к первой строке, для которой match вернул true.
// false, если такой строки нет.
func (s *Store[T]) Patch(key string, match func(T) bool, fn func(*T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.views[key]
	if !ok {
		return false
	}
	e.touched = s.now()
	for i := range e.items {
		if match(e.items[i]) {
			fn(&e.items[i])
			return true
		}
	}
	return false
}

// Snapshot возвращает копию состояния; пустой снимок, если экран не открывался
func (s *Store[T]) Snapshot(key string) Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.views[key]
	if !ok {
		return Snapshot[T]{}
	}
	e.touched = s.now()
	return e.snapshot()
}

// Drop удаляет состояние сессии (logout)
func (s *Store[T]) Drop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.views, key)
}

// Sweep удаляет устаревшие записи и возвращает их количество
func (s *Store[T]) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	n := 0
	for k, e := range s.views {
		if e.touched.Before(cutoff) {
			delete(s.views, k)
			n++
		}
	}
	return n
}

// Len — количество сессий с состоянием
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

func (e *entry[T]) snapshot() Snapshot[T] {
	return Snapshot[T]{
		Items:  append([]T(nil), e.items...),
		Meta:   e.meta,
		Err:    e.err,
		Loaded: e.loaded,
	}
}

// Sweeper — то, что умеет чистить устаревшее состояние
type Sweeper interface {
	Sweep() int
	Drop(key string)
}

// RunSweeper периодически вызывает Sweep у всех хранилищ до отмены ctx
func RunSweeper(ctx context.Context, interval time.Duration, stores ...Sweeper) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, s := range stores {
				s.Sweep()
			}
		}
	}
}
