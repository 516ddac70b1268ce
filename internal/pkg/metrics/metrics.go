// Package metrics defines and registers the custom Prometheus metrics of the
// inquiry CRM service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry through promauto
// on package initialisation; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts sign-in attempts.
// Label:
//   - result: "success", "invalid_credentials", "inactive" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PasswordResetStepsTotal counts forgot-password wizard steps.
// Labels:
//   - step: "request", "verify" or "reset"
//   - result: "ok" or a short failure reason (e.g. "invalid_otp")
var PasswordResetStepsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_reset_steps_total",
		Help:      "Total number of password reset wizard steps, by step and result.",
	},
	[]string{"step", "result"},
)

// ── Inquiry metrics ───────────────────────────────────────────────────────────

// InquiriesCreatedTotal counts newly created inquiries.
// Label:
//   - status: initial inquiry status ("tender", "purchase", "procurement", "urgent")
var InquiriesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inquiries_created_total",
		Help:      "Total number of inquiries created, by initial status.",
	},
	[]string{"status"},
)

// InquiryIndexErrorsTotal counts failed search index writes and queries.
// Label:
//   - op: "index", "remove" or "search"
var InquiryIndexErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inquiry_index_errors_total",
		Help:      "Total number of inquiry search index failures, by operation.",
	},
	[]string{"op"},
)

// ── Follow-up & notification metrics ──────────────────────────────────────────

// FollowUpRemindersTotal counts reminders sent for due follow-ups.
var FollowUpRemindersTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "follow_up_reminders_total",
		Help:      "Total number of follow-up due reminders sent.",
	},
)

// NotificationsDeliveredTotal counts persisted notifications.
// Label:
//   - kind: notification kind (e.g. "follow_up_due")
var NotificationsDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_delivered_total",
		Help:      "Total number of notifications delivered, by kind.",
	},
	[]string{"kind"},
)

// NotificationQueueDepth tracks the number of notifications waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationDeliveryDuration measures how long a single delivery takes.
var NotificationDeliveryDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_delivery_duration_seconds",
		Help:      "Duration of notification delivery from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)

// MailsQueuedTotal counts messages handed to the mail queue.
// Labels:
//   - template: mail template name
//   - result: "ok" or "error"
var MailsQueuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mails_queued_total",
		Help:      "Total number of mails handed to the mail queue, by template and result.",
	},
	[]string{"template", "result"},
)

// ── Analytics metrics ─────────────────────────────────────────────────────────

// AnalyticsCacheTotal counts summary cache lookups.
// Label:
//   - result: "hit" or "miss"
var AnalyticsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analytics_cache_total",
		Help:      "Total number of analytics summary cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
