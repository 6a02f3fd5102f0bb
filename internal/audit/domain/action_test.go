package domain

import (
	"errors"
	"testing"
	"time"
)

func validAction() Action {
	return Action{
		ActorID:    "1",
		ActorEmail: "admin@guideme.np",
		Action:     "status_update",
		Resource:   "contact",
		ResourceID: "c1",
		Value:      "resolved",
		OccurredAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestActionValidate(t *testing.T) {
	a := validAction()
	if err := a.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	broken := []func(*Action){
		func(a *Action) { a.ActorID = "" },
		func(a *Action) { a.Action = " " },
		func(a *Action) { a.Resource = "" },
		func(a *Action) { a.ResourceID = "" },
		func(a *Action) { a.OccurredAt = time.Time{} },
	}
	for i, mutate := range broken {
		a := validAction()
		mutate(&a)
		if err := a.Validate(); !errors.Is(err, ErrInvalidAction) {
			t.Fatalf("case %d: err = %v, want ErrInvalidAction", i, err)
		}
	}
}

func TestDeriveIDStableAcrossRedelivery(t *testing.T) {
	a, b := validAction(), validAction()
	b.OccurredAt = b.OccurredAt.In(time.FixedZone("NPT", 5*3600+45*60))
	if a.DeriveID() != b.DeriveID() {
		t.Fatalf("same event must derive the same id")
	}

	b.Value = "pending"
	if a.DeriveID() == b.DeriveID() {
		t.Fatalf("different events must derive different ids")
	}
}

func TestPageNormalize(t *testing.T) {
	tests := []struct {
		in   Page
		want Page
		err  error
	}{
		{Page{}, Page{Limit: DefaultLimit}, nil},
		{Page{Limit: 1000, Offset: 5}, Page{Limit: MaxLimit, Offset: 5}, nil},
		{Page{Limit: 10}, Page{Limit: 10}, nil},
		{Page{Limit: -1}, Page{}, ErrInvalidPage},
		{Page{Offset: -1}, Page{}, ErrInvalidPage},
	}
	for _, tt := range tests {
		got, err := tt.in.Normalize()
		if !errors.Is(err, tt.err) {
			t.Fatalf("Normalize(%+v) err = %v, want %v", tt.in, err, tt.err)
		}
		if err == nil && got != tt.want {
			t.Fatalf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
