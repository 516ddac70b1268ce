package ports

import (
	"context"
	"time"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string, at time.Time) error
	MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}

// NotificationInput is the message services hand to the notifier.
type NotificationInput struct {
	UserID  string
	Kind    domain.NotificationKind
	Title   string
	Message string
	Link    string
}

// Notifier accepts notifications for asynchronous delivery.
type Notifier interface {
	Notify(in NotificationInput)
}

type NotificationService interface {
	// Deliver persists a notification; called by the dispatcher workers.
	Deliver(ctx context.Context, in NotificationInput) error
	List(ctx context.Context, filter domain.NotificationFilter) (domain.Page[domain.Notification], error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}
