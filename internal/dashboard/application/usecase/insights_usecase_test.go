package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"guideadmin/internal/dashboard/domain"
)

func fixedNow() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }

func TestAnalyticsYears(t *testing.T) {
	svc := NewGetAnalyticsService(&fakeInsights{}, testLogger())
	svc.now = fixedNow

	want := []int{2025, 2024, 2023, 2022, 2021, 2020}
	got := svc.Years()
	if len(got) != len(want) {
		t.Fatalf("Years() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Years() = %v, want %v", got, want)
		}
	}
}

func TestAnalyticsIssuesOneRequestPerYear(t *testing.T) {
	gw := &fakeInsights{}
	svc := NewGetAnalyticsService(gw, testLogger())
	svc.now = fixedNow

	a, err := svc.Execute(context.Background(), 2023)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if a.Year != 2023 {
		t.Fatalf("Year = %d", a.Year)
	}
	if len(gw.years) != 1 || gw.years[0] != 2023 {
		t.Fatalf("backend calls = %v, want [2023]", gw.years)
	}
}

func TestAnalyticsDefaultsToCurrentYear(t *testing.T) {
	gw := &fakeInsights{}
	svc := NewGetAnalyticsService(gw, testLogger())
	svc.now = fixedNow

	if _, err := svc.Execute(context.Background(), 0); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(gw.years) != 1 || gw.years[0] != 2025 {
		t.Fatalf("backend calls = %v", gw.years)
	}
}

func TestAnalyticsRejectsYearOutOfRange(t *testing.T) {
	gw := &fakeInsights{}
	svc := NewGetAnalyticsService(gw, testLogger())
	svc.now = fixedNow

	for _, y := range []int{1999, 2027} {
		if _, err := svc.Execute(context.Background(), y); !errors.Is(err, domain.ErrInvalidYear) {
			t.Fatalf("Execute(%d) error = %v, want ErrInvalidYear", y, err)
		}
	}
	if len(gw.years) != 0 {
		t.Fatalf("backend must not be called, got %v", gw.years)
	}
}

func TestOverviewPassesError(t *testing.T) {
	svc := NewGetOverviewService(&fakeInsights{err: domain.ErrBackendUnavailable}, testLogger())
	if _, err := svc.Execute(context.Background()); !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("error = %v", err)
	}
}
