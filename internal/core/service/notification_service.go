package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
	"github.com/indocrm/inquiry-desk/internal/core/ports"
	"github.com/indocrm/inquiry-desk/internal/pkg/metrics"
)

type NotificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log, now: utcNow}
}

// Deliver persists one notification for its recipient.
func (s *NotificationService) Deliver(ctx context.Context, in ports.NotificationInput) error {
	if in.UserID == "" {
		return domain.Invalid("notification recipient is required")
	}
	n := &domain.Notification{
		UserID:  in.UserID,
		Kind:    in.Kind,
		Title:   in.Title,
		Message: in.Message,
		Link:    in.Link,
	}
	stampNew(&n.Meta, s.now())

	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("deliver notification: %w", err)
	}
	metrics.NotificationsDeliveredTotal.WithLabelValues(string(in.Kind)).Inc()
	s.log.Debug().Str("user_id", in.UserID).Str("kind", string(in.Kind)).Msg("notification delivered")
	return nil
}

func (s *NotificationService) List(ctx context.Context, filter domain.NotificationFilter) (domain.Page[domain.Notification], error) {
	filter.ListQuery = filter.Normalize()
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return domain.Page[domain.Notification]{}, fmt.Errorf("list notifications: %w", err)
	}
	return domain.NewPage(items, total, filter.ListQuery), nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id, s.now())
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID, s.now())
}

func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
