package usecase

import (
	"context"
	"errors"
	"testing"

	"guideadmin/internal/dashboard/application/ports/in"
	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/shared/auth"
	"guideadmin/internal/shared/logger"
)

func TestListGuidesNormalizesQuery(t *testing.T) {
	gw := &fakeGuides{page: &domain.Page[domain.Guide]{Items: []domain.Guide{{ID: "1"}}}}
	svc := NewListGuidesService(gw, testLogger())

	page, err := svc.Execute(context.Background(), domain.ListQuery{Limit: 500, Search: "  ram "})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if gw.gotQuery.Page != 1 || gw.gotQuery.Limit != domain.MaxLimit || gw.gotQuery.Search != "ram" {
		t.Fatalf("query = %+v", gw.gotQuery)
	}
	if page.CurrentPage != 1 {
		t.Fatalf("CurrentPage = %d", page.CurrentPage)
	}
}

func TestSuspensionValidatesAction(t *testing.T) {
	gw := &fakeGuides{}
	pub := &fakePublisher{}
	svc := NewSetGuideSuspensionService(gw, pub, testLogger())

	_, err := svc.Execute(context.Background(), in.SetGuideSuspensionInput{GuideID: "1", Action: "ban"})
	if !errors.Is(err, domain.ErrInvalidAction) {
		t.Fatalf("error = %v, want ErrInvalidAction", err)
	}
	_, err = svc.Execute(context.Background(), in.SetGuideSuspensionInput{Action: domain.SuspensionSuspend})
	if !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("error = %v, want ErrInvalidID", err)
	}
	if gw.gotAction != "" || len(pub.events) != 0 {
		t.Fatalf("nothing should be sent on invalid input")
	}
}

func TestSuspensionPublishesAction(t *testing.T) {
	gw := &fakeGuides{mutateMsg: "Guide suspended"}
	pub := &fakePublisher{}
	svc := NewSetGuideSuspensionService(gw, pub, testLogger())

	ctx := auth.ContextWithClaims(context.Background(), &auth.Claims{UserID: "7", Email: "a@b.c"})
	ctx = logger.WithRequestID(ctx, "req-1")

	msg, err := svc.Execute(ctx, in.SetGuideSuspensionInput{GuideID: "42", Action: domain.SuspensionSuspend})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if msg != "Guide suspended" {
		t.Fatalf("message = %q", msg)
	}
	if gw.gotID != "42" || gw.gotAction != "suspended" {
		t.Fatalf("backend got id=%q action=%q", gw.gotID, gw.gotAction)
	}
	if len(pub.events) != 1 {
		t.Fatalf("published %d events", len(pub.events))
	}
	ev := pub.events[0]
	if ev.ActorID != "7" || ev.Resource != domain.ResourceGuide || ev.ResourceID != "42" || ev.Value != "suspended" || ev.RequestID != "req-1" {
		t.Fatalf("event = %+v", ev)
	}
}

func TestSuspensionFailureDoesNotPublish(t *testing.T) {
	gw := &fakeGuides{mutateErrs: &domain.BackendError{Status: 404, Message: "Guide not found"}}
	pub := &fakePublisher{}
	svc := NewSetGuideSuspensionService(gw, pub, testLogger())

	_, err := svc.Execute(context.Background(), in.SetGuideSuspensionInput{GuideID: "1", Action: domain.SuspensionUnblock})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(pub.events) != 0 {
		t.Fatalf("failed action must not be published")
	}
}

func TestPublishErrorDoesNotFailAction(t *testing.T) {
	gw := &fakeGuides{}
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewSetGuideSuspensionService(gw, pub, testLogger())

	if _, err := svc.Execute(context.Background(), in.SetGuideSuspensionInput{GuideID: "1", Action: domain.SuspensionUnblock}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
}

func TestListRequestsSearchAndSort(t *testing.T) {
	gw := &fakeGuides{requests: []domain.Guide{
		{ID: "1", FullName: "Ram Thapa", Email: "ram@x.np", CreatedAt: "2024-05-01T10:00:00Z"},
		{ID: "2", FullName: "Sita Rai", Email: "sita@x.np", CreatedAt: "2024-06-01T10:00:00Z"},
		{ID: "3", FullName: "Hari", Email: "ramesh@x.np", CreatedAt: "2024-04-01T10:00:00Z"},
	}}
	svc := NewListRequestsService(gw, testLogger())

	got, err := svc.Execute(context.Background(), in.ListRequestsInput{Search: "RAM", Sort: "oldest"})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "3" || got[1].ID != "1" {
		t.Fatalf("got %+v", got)
	}

	got, _ = svc.Execute(context.Background(), in.ListRequestsInput{Sort: "newest"})
	if len(got) != 3 || got[0].ID != "2" || got[2].ID != "3" {
		t.Fatalf("newest order wrong: %+v", got)
	}
}

func TestReviewRequest(t *testing.T) {
	gw := &fakeGuides{}
	pub := &fakePublisher{}
	svc := NewReviewRequestService(gw, pub, testLogger())

	if _, err := svc.Execute(context.Background(), in.ReviewRequestInput{RequestID: "5", Action: "maybe"}); !errors.Is(err, domain.ErrInvalidAction) {
		t.Fatalf("error = %v, want ErrInvalidAction", err)
	}

	msg, err := svc.Execute(context.Background(), in.ReviewRequestInput{RequestID: "5", Action: domain.ReviewAccept})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if msg == "" {
		t.Fatalf("expected a success message")
	}
	if gw.gotAction != "accept" || len(pub.events) != 1 || pub.events[0].Resource != domain.ResourceGuideRequest {
		t.Fatalf("action=%q events=%+v", gw.gotAction, pub.events)
	}
}
