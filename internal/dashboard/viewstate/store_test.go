package viewstate

import (
	"testing"
	"time"
)

type row struct {
	ID     string
	Status string
}

func TestFailKeepsPreviousItems(t *testing.T) {
	s := New[row](time.Hour)
	s.Replace("sess", []row{{"1", "pending"}, {"2", "pending"}}, Meta{TotalPages: 2})

	snap := s.Fail("sess", "X")
	if snap.Err != "X" {
		t.Fatalf("Err = %q", snap.Err)
	}
	if len(snap.Items) != 2 || snap.Items[0].ID != "1" || snap.Items[1].ID != "2" {
		t.Fatalf("items changed after failure: %+v", snap.Items)
	}
	if snap.Meta.TotalPages != 2 {
		t.Fatalf("meta changed after failure: %+v", snap.Meta)
	}
}

func TestReplaceClearsError(t *testing.T) {
	s := New[row](time.Hour)
	s.Fail("sess", "X")
	snap := s.Replace("sess", []row{{"3", "resolved"}}, Meta{})
	if snap.Err != "" || len(snap.Items) != 1 || !snap.Loaded {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestPatchUpdatesOnlyMatchingRow(t *testing.T) {
	s := New[row](time.Hour)
	s.Replace("sess", []row{{"1", "pending"}, {"2", "pending"}, {"3", "in-progress"}}, Meta{})

	ok := s.Patch("sess", func(r row) bool { return r.ID == "2" }, func(r *row) { r.Status = "resolved" })
	if !ok {
		t.Fatalf("Patch() = false")
	}
	snap := s.Snapshot("sess")
	want := []string{"pending", "resolved", "in-progress"}
	for i, r := range snap.Items {
		if r.Status != want[i] {
			t.Fatalf("row %d status = %q, want %q", i, r.Status, want[i])
		}
	}
	if s.Patch("sess", func(r row) bool { return r.ID == "99" }, func(r *row) {}) {
		t.Fatalf("Patch() of missing row should be false")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s := New[row](time.Hour)
	s.Replace("a", []row{{"1", "pending"}}, Meta{})
	if snap := s.Snapshot("b"); snap.Loaded || len(snap.Items) != 0 {
		t.Fatalf("session b sees %+v", snap)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New[row](time.Hour)
	s.Replace("sess", []row{{"1", "pending"}}, Meta{})
	snap := s.Snapshot("sess")
	snap.Items[0].Status = "mutated"
	if s.Snapshot("sess").Items[0].Status != "pending" {
		t.Fatalf("snapshot aliases store")
	}
}

func TestSweepDropsIdleSessions(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := New[row](time.Minute)
	s.now = func() time.Time { return now }
	s.Replace("old", nil, Meta{})

	now = now.Add(2 * time.Minute)
	s.Replace("fresh", nil, Meta{})

	if n := s.Sweep(); n != 1 {
		t.Fatalf("Sweep() = %d, want 1", n)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d", s.Len())
	}

	s.Drop("fresh")
	if s.Len() != 0 {
		t.Fatalf("Drop() left %d entries", s.Len())
	}
}
