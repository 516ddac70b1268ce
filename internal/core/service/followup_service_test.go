package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
	"github.com/indocrm/inquiry-desk/internal/core/ports"
)

var fixedNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newFollowUpFixture(items ...domain.FollowUp) (*FollowUpService, *stubFollowUpRepo, *stubNotifier, *stubMail) {
	repo := newStubFollowUpRepo(items...)
	users := newStubUserRepo(fixtureUser("u-2", "two@example.com", true))
	notifier := &stubNotifier{}
	mail := &stubMail{}
	svc := NewFollowUpService(repo, users, notifier, mail, discardLogger)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, notifier, mail
}

func pendingFollowUp(id string, due time.Time) domain.FollowUp {
	return domain.FollowUp{
		Meta:       domain.Meta{ID: id},
		Name:       "Call " + id,
		DueDate:    due,
		Status:     domain.FollowUpPending,
		AssignedTo: domain.Ref{ID: "u-2", Name: "User u-2"},
	}
}

func TestFollowUpService_Create_NotifiesAssignee(t *testing.T) {
	svc, repo, notifier, _ := newFollowUpFixture()

	fu, err := svc.Create(context.Background(), adminActor, ports.FollowUpInput{
		Name:       "Send revised quote",
		DueDate:    fixedNow.Add(24 * time.Hour),
		AssignedTo: "u-2",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if fu.Status != domain.FollowUpPending || fu.AssignedTo.ID != "u-2" {
		t.Fatalf("unexpected follow-up: %+v", fu)
	}
	if _, ok := repo.items[fu.ID]; !ok {
		t.Fatalf("follow-up not persisted")
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Kind != domain.NotifyFollowUpAssigned {
		t.Fatalf("expected assignment notification, got %+v", notifier.sent)
	}
}

func TestFollowUpService_Create_Validation(t *testing.T) {
	svc, _, _, _ := newFollowUpFixture()
	ctx := context.Background()

	if _, err := svc.Create(ctx, adminActor, ports.FollowUpInput{Name: "x", AssignedTo: "u-2"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing due date, got %v", err)
	}
	if _, err := svc.Create(ctx, adminActor, ports.FollowUpInput{Name: "x", AssignedTo: "nobody", DueDate: fixedNow}); !errors.Is(err, domain.ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
}

func TestFollowUpService_ToggleStatus(t *testing.T) {
	svc, repo, _, _ := newFollowUpFixture(pendingFollowUp("f-1", fixedNow))
	ctx := context.Background()

	fu, err := svc.ToggleStatus(ctx, "f-1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if fu.Status != domain.FollowUpCompleted || fu.CompletedAt == nil {
		t.Fatalf("expected completed with timestamp, got %+v", fu)
	}
	if repo.items["f-1"].Status != domain.FollowUpCompleted {
		t.Fatalf("status not persisted")
	}

	fu, _ = svc.ToggleStatus(ctx, "f-1")
	if fu.Status != domain.FollowUpPending || fu.CompletedAt != nil {
		t.Fatalf("expected pending again, got %+v", fu)
	}
}

func TestFollowUpService_Update_RearmsReminder(t *testing.T) {
	reminded := pendingFollowUp("f-1", fixedNow)
	at := fixedNow.Add(-time.Hour)
	reminded.ReminderSentAt = &at
	svc, repo, _, _ := newFollowUpFixture(reminded)

	_, err := svc.Update(context.Background(), "f-1", ports.FollowUpInput{Name: "Call again", DueDate: fixedNow.Add(72 * time.Hour)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.items["f-1"].ReminderSentAt != nil {
		t.Fatalf("moving the due date must clear reminder_sent_at")
	}
}

func TestFollowUpService_SendDueReminders_OncePerFollowUp(t *testing.T) {
	done := pendingFollowUp("f-done", fixedNow.Add(-time.Hour))
	done.Status = domain.FollowUpCompleted
	svc, repo, notifier, mail := newFollowUpFixture(
		pendingFollowUp("f-overdue", fixedNow.Add(-2*time.Hour)),
		pendingFollowUp("f-soon", fixedNow.Add(30*time.Minute)),
		pendingFollowUp("f-later", fixedNow.Add(48*time.Hour)),
		done,
	)
	ctx := context.Background()

	sent, err := svc.SendDueReminders(ctx, fixedNow, time.Hour)
	if err != nil {
		t.Fatalf("send reminders: %v", err)
	}
	if sent != 2 {
		t.Fatalf("expected 2 reminders, got %d", sent)
	}
	if len(notifier.sent) != 2 || len(mail.sent) != 2 {
		t.Fatalf("expected 2 notifications and mails, got %d/%d", len(notifier.sent), len(mail.sent))
	}
	if repo.items["f-overdue"].ReminderSentAt == nil || repo.items["f-later"].ReminderSentAt != nil {
		t.Fatalf("reminder markers wrong")
	}

	sent, _ = svc.SendDueReminders(ctx, fixedNow.Add(time.Minute), time.Hour)
	if sent != 0 {
		t.Fatalf("second sweep must not remind again, got %d", sent)
	}
}

func TestFollowUpService_List_Overdue(t *testing.T) {
	svc, _, _, _ := newFollowUpFixture(
		pendingFollowUp("f-1", fixedNow.Add(-time.Hour)),
		pendingFollowUp("f-2", fixedNow.Add(time.Hour)),
	)

	page, err := svc.List(context.Background(), domain.FollowUpFilter{Overdue: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 || page.Items[0].ID != "f-1" {
		t.Fatalf("expected only the overdue follow-up, got %+v", page.Items)
	}
}
