package ports

import (
	"context"
	"time"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

type FollowUpRepository interface {
	Store[domain.FollowUp]
	List(ctx context.Context, filter domain.FollowUpFilter) ([]domain.FollowUp, int64, error)
	// DueForReminder returns pending follow-ups due before the cutoff that
	// have not been reminded yet, earliest first.
	DueForReminder(ctx context.Context, cutoff time.Time, limit int) ([]domain.FollowUp, error)
	MarkReminded(ctx context.Context, id string, at time.Time) error
}

type FollowUpInput struct {
	Name        string
	Description string
	DueDate     time.Time
	AssignedTo  string
	InquiryID   string
}

type FollowUpService interface {
	List(ctx context.Context, filter domain.FollowUpFilter) (domain.Page[domain.FollowUp], error)
	Get(ctx context.Context, id string) (*domain.FollowUp, error)
	Create(ctx context.Context, actor Actor, in FollowUpInput) (*domain.FollowUp, error)
	Update(ctx context.Context, id string, in FollowUpInput) (*domain.FollowUp, error)
	Delete(ctx context.Context, id string) error
	ToggleStatus(ctx context.Context, id string) (*domain.FollowUp, error)
	// SendDueReminders notifies assignees of follow-ups due before now+lead
	// and returns how many reminders went out.
	SendDueReminders(ctx context.Context, now time.Time, lead time.Duration) (int, error)
}
