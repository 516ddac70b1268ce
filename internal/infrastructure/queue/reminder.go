package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/indocrm/inquiry-desk/internal/core/ports"
)

// ReminderLoop periodically asks the follow-up service to remind assignees
// of follow-ups falling due within Lead.
type ReminderLoop struct {
	Service  ports.FollowUpService
	Interval time.Duration
	Lead     time.Duration
	Log      zerolog.Logger
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
func (r *ReminderLoop) Run(ctx context.Context) {
	interval := r.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *ReminderLoop) sweep(ctx context.Context) {
	sent, err := r.Service.SendDueReminders(ctx, time.Now().UTC(), r.Lead)
	if err != nil {
		if ctx.Err() == nil {
			r.Log.Error().Err(err).Msg("follow-up reminder sweep failed")
		}
		return
	}
	if sent > 0 {
		r.Log.Info().Int("sent", sent).Msg("follow-up reminders sent")
	}
}
