package domain

import (
	"fmt"
	"strings"
	"time"
)

// FollowUpStatus is either pending or completed.
type FollowUpStatus string

const (
	FollowUpPending   FollowUpStatus = "pending"
	FollowUpCompleted FollowUpStatus = "completed"
)

func ParseFollowUpStatus(raw string) (FollowUpStatus, error) {
	switch s := FollowUpStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case FollowUpPending, FollowUpCompleted:
		return s, nil
	default:
		return "", fmt.Errorf("%w %q", ErrInvalidStatus, raw)
	}
}

// FollowUp is a reminder task with a due date and a responsible person.
type FollowUp struct {
	Meta           `bson:",inline"`
	Name           string         `json:"name" bson:"name"`
	Description    string         `json:"description" bson:"description"`
	DueDate        time.Time      `json:"due_date" bson:"due_date"`
	Status         FollowUpStatus `json:"status" bson:"status"`
	AssignedTo     Ref            `json:"assigned_to" bson:"assigned_to"`
	InquiryID      string         `json:"inquiry_id,omitempty" bson:"inquiry_id,omitempty"`
	ReminderSentAt *time.Time     `json:"reminder_sent_at,omitempty" bson:"reminder_sent_at,omitempty"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CreatedBy      Ref            `json:"created_by" bson:"created_by"`
}

// ToggleStatus flips pending and completed, keeping CompletedAt in step.
func (f *FollowUp) ToggleStatus(now time.Time) FollowUpStatus {
	if f.Status == FollowUpCompleted {
		f.Status = FollowUpPending
		f.CompletedAt = nil
	} else {
		f.Status = FollowUpCompleted
		f.CompletedAt = &now
	}
	f.UpdatedAt = now
	return f.Status
}

// Reschedule moves the due date and re-arms the reminder.
func (f *FollowUp) Reschedule(due time.Time) {
	if !f.DueDate.Equal(due) {
		f.DueDate = due
		f.ReminderSentAt = nil
	}
}

func (f *FollowUp) Overdue(now time.Time) bool {
	return f.Status == FollowUpPending && f.DueDate.Before(now)
}

// FollowUpFilter narrows the follow-ups list. Overdue selects pending
// follow-ups whose due date is before Now.
type FollowUpFilter struct {
	ListQuery
	Status     FollowUpStatus
	AssignedTo string
	Overdue    bool
	Now        time.Time
}
