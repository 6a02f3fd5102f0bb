package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"guideadmin/internal/audit/domain"
	"guideadmin/internal/shared/logger"

	"github.com/google/uuid"
)

type memoryRepo struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]domain.Action
	order   []uuid.UUID
	err     error
	gotPage domain.Page
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: map[uuid.UUID]domain.Action{}}
}

func (r *memoryRepo) Insert(_ context.Context, a *domain.Action) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	if _, ok := r.rows[a.ID]; ok {
		return false, nil
	}
	r.rows[a.ID] = *a
	r.order = append(r.order, a.ID)
	return true, nil
}

func (r *memoryRepo) List(_ context.Context, p domain.Page) ([]domain.Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gotPage = p
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Action
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, r.rows[r.order[i]])
	}
	return out, nil
}

func testLogger() *logger.Logger { return logger.NewWriterLogger("test", io.Discard) }

func event(value string) domain.Action {
	return domain.Action{
		ActorID:    "1",
		Action:     "suspension",
		Resource:   "guide",
		ResourceID: "g1",
		Value:      value,
		OccurredAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestRecordActionIsIdempotent(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewRecordActionService(repo, testLogger())
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 9, 31, 0, 0, time.UTC) }

	first, err := svc.Execute(context.Background(), event("suspended"))
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.ID == uuid.Nil || first.RecordedAt.IsZero() {
		t.Fatalf("id and recorded_at must be set: %+v", first)
	}

	second, err := svc.Execute(context.Background(), event("suspended"))
	if err != nil {
		t.Fatalf("redelivery error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("redelivery id = %s, want %s", second.ID, first.ID)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(repo.rows))
	}
}

func TestRecordActionRejectsInvalid(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewRecordActionService(repo, testLogger())

	a := event("x")
	a.ResourceID = ""
	if _, err := svc.Execute(context.Background(), a); !errors.Is(err, domain.ErrInvalidAction) {
		t.Fatalf("err = %v, want ErrInvalidAction", err)
	}
	if len(repo.rows) != 0 {
		t.Fatalf("invalid event must not be stored")
	}
}

func TestRecordActionWrapsRepoError(t *testing.T) {
	repo := newMemoryRepo()
	repo.err = errors.New("connection reset")
	svc := NewRecordActionService(repo, testLogger())

	_, err := svc.Execute(context.Background(), event("active"))
	if err == nil || errors.Is(err, domain.ErrInvalidAction) {
		t.Fatalf("err = %v, want repository error", err)
	}
}

func TestListActionsNormalizesPage(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewListActionsService(repo, testLogger())

	got, err := svc.Execute(context.Background(), domain.Page{Limit: 5000})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if got == nil {
		t.Fatalf("empty journal must be an empty slice, not nil")
	}
	if repo.gotPage.Limit != domain.MaxLimit {
		t.Fatalf("limit = %d, want %d", repo.gotPage.Limit, domain.MaxLimit)
	}

	if _, err := svc.Execute(context.Background(), domain.Page{Offset: -3}); !errors.Is(err, domain.ErrInvalidPage) {
		t.Fatalf("err = %v, want ErrInvalidPage", err)
	}
}

func TestListActionsNewestFirst(t *testing.T) {
	repo := newMemoryRepo()
	record := NewRecordActionService(repo, testLogger())
	for _, v := range []string{"suspended", "active"} {
		if _, err := record.Execute(context.Background(), event(v)); err != nil {
			t.Fatalf("record %s: %v", v, err)
		}
	}

	got, err := NewListActionsService(repo, testLogger()).Execute(context.Background(), domain.Page{})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(got) != 2 || got[0].Value != "active" {
		t.Fatalf("got = %+v", got)
	}
}
