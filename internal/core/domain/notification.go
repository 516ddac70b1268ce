package domain

import "time"

// NotificationKind names the event a notification was raised for.
type NotificationKind string

const (
	NotifyInquiryAssigned  NotificationKind = "inquiry_assigned"
	NotifyInquiryStatus    NotificationKind = "inquiry_status"
	NotifyFollowUpAssigned NotificationKind = "follow_up_assigned"
	NotifyFollowUpDue      NotificationKind = "follow_up_due"
)

// Notification is an in-app message for a single user.
type Notification struct {
	Meta    `bson:",inline"`
	UserID  string           `json:"user_id" bson:"user_id"`
	Kind    NotificationKind `json:"kind" bson:"kind"`
	Title   string           `json:"title" bson:"title"`
	Message string           `json:"message" bson:"message"`
	Link    string           `json:"link,omitempty" bson:"link,omitempty"`
	Read    bool             `json:"read" bson:"read"`
	ReadAt  *time.Time       `json:"read_at,omitempty" bson:"read_at,omitempty"`
}

type NotificationFilter struct {
	ListQuery
	UserID     string
	UnreadOnly bool
}

// MailMessage is handed to the mail queue for out-of-band delivery.
type MailMessage struct {
	To       string            `json:"to"`
	Subject  string            `json:"subject"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data,omitempty"`
}

const (
	MailTemplateOTP      = "password_reset_otp"
	MailTemplateReminder = "follow_up_reminder"
)
