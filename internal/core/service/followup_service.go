package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
	"github.com/indocrm/inquiry-desk/internal/core/ports"
	"github.com/indocrm/inquiry-desk/internal/pkg/metrics"
)

// reminderBatch bounds how many follow-ups one sweep reminds.
const reminderBatch = 200

type FollowUpService struct {
	repo     ports.FollowUpRepository
	users    ports.UserRepository
	notifier ports.Notifier
	mail     ports.MailQueue
	log      zerolog.Logger
	now      func() time.Time
}

func NewFollowUpService(repo ports.FollowUpRepository, users ports.UserRepository, notifier ports.Notifier, mail ports.MailQueue, log zerolog.Logger) *FollowUpService {
	return &FollowUpService{
		repo:     repo,
		users:    users,
		notifier: notifier,
		mail:     mail,
		log:      log,
		now:      utcNow,
	}
}

func (s *FollowUpService) List(ctx context.Context, filter domain.FollowUpFilter) (domain.Page[domain.FollowUp], error) {
	filter.ListQuery = filter.Normalize()
	if filter.Overdue && filter.Now.IsZero() {
		filter.Now = s.now()
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return domain.Page[domain.FollowUp]{}, fmt.Errorf("list follow-ups: %w", err)
	}
	return domain.NewPage(items, total, filter.ListQuery), nil
}

func (s *FollowUpService) Get(ctx context.Context, id string) (*domain.FollowUp, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *FollowUpService) Create(ctx context.Context, actor ports.Actor, in ports.FollowUpInput) (*domain.FollowUp, error) {
	if in.DueDate.IsZero() {
		return nil, domain.Invalid("due date is required")
	}
	assignee, err := activeAssignee(ctx, s.users, in.AssignedTo)
	if err != nil {
		return nil, err
	}

	fu := &domain.FollowUp{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		DueDate:     in.DueDate.UTC(),
		Status:      domain.FollowUpPending,
		AssignedTo:  assignee.Ref(),
		InquiryID:   in.InquiryID,
		CreatedBy:   actor.Ref(),
	}
	stampNew(&fu.Meta, s.now())

	if err := s.repo.Create(ctx, fu); err != nil {
		return nil, err
	}

	if assignee.ID != actor.ID {
		s.notifier.Notify(ports.NotificationInput{
			UserID:  assignee.ID,
			Kind:    domain.NotifyFollowUpAssigned,
			Title:   "New follow-up",
			Message: fmt.Sprintf("%s assigned you %q due %s", actor.Name, fu.Name, fu.DueDate.Format("02 Jan 2006")),
			Link:    followUpLink(fu.ID),
		})
	}
	return fu, nil
}

// Update edits the follow-up. Moving the due date re-arms the reminder.
func (s *FollowUpService) Update(ctx context.Context, id string, in ports.FollowUpInput) (*domain.FollowUp, error) {
	fu, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.AssignedTo != "" && in.AssignedTo != fu.AssignedTo.ID {
		assignee, err := activeAssignee(ctx, s.users, in.AssignedTo)
		if err != nil {
			return nil, err
		}
		fu.AssignedTo = assignee.Ref()
		fu.ReminderSentAt = nil
	}
	if !in.DueDate.IsZero() {
		fu.Reschedule(in.DueDate.UTC())
	}
	fu.Name = strings.TrimSpace(in.Name)
	fu.Description = strings.TrimSpace(in.Description)
	fu.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, id, fu); err != nil {
		return nil, err
	}
	return fu, nil
}

func (s *FollowUpService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ToggleStatus flips pending and completed.
func (s *FollowUpService) ToggleStatus(ctx context.Context, id string) (*domain.FollowUp, error) {
	fu, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fu.ToggleStatus(s.now())
	if err := s.repo.Update(ctx, id, fu); err != nil {
		return nil, err
	}
	s.log.Info().Str("follow_up_id", id).Str("status", string(fu.Status)).Msg("follow-up status changed")
	return fu, nil
}

// SendDueReminders reminds each pending follow-up once, shortly before it is due.
func (s *FollowUpService) SendDueReminders(ctx context.Context, now time.Time, lead time.Duration) (int, error) {
	due, err := s.repo.DueForReminder(ctx, now.Add(lead), reminderBatch)
	if err != nil {
		return 0, fmt.Errorf("load due follow-ups: %w", err)
	}

	sent := 0
	for i := range due {
		fu := &due[i]
		s.notifier.Notify(ports.NotificationInput{
			UserID:  fu.AssignedTo.ID,
			Kind:    domain.NotifyFollowUpDue,
			Title:   "Follow-up due",
			Message: fmt.Sprintf("%q is due %s", fu.Name, fu.DueDate.Format("02 Jan 2006 15:04")),
			Link:    followUpLink(fu.ID),
		})
		s.mailReminder(ctx, fu)

		if err := s.repo.MarkReminded(ctx, fu.ID, now); err != nil {
			s.log.Warn().Err(err).Str("follow_up_id", fu.ID).Msg("failed to mark follow-up reminded")
			continue
		}
		sent++
	}

	if sent > 0 {
		metrics.FollowUpRemindersTotal.Add(float64(sent))
		s.log.Info().Int("count", sent).Msg("follow-up reminders sent")
	}
	return sent, nil
}

// mailReminder is best effort: the in-app notification already went out.
func (s *FollowUpService) mailReminder(ctx context.Context, fu *domain.FollowUp) {
	user, err := s.users.FindByID(ctx, fu.AssignedTo.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("follow_up_id", fu.ID).Msg("reminder assignee lookup failed")
		return
	}
	msg := domain.MailMessage{
		To:       user.Email,
		Subject:  "Follow-up due: " + fu.Name,
		Template: domain.MailTemplateReminder,
		Data: map[string]string{
			"name":        user.Name,
			"follow_up":   fu.Name,
			"description": fu.Description,
			"due_date":    fu.DueDate.Format(time.RFC3339),
		},
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		metrics.MailsQueuedTotal.WithLabelValues(msg.Template, "error").Inc()
		s.log.Warn().Err(err).Str("follow_up_id", fu.ID).Msg("failed to queue reminder mail")
		return
	}
	metrics.MailsQueuedTotal.WithLabelValues(msg.Template, "ok").Inc()
}

func followUpLink(id string) string { return "/follow-ups/" + id }
