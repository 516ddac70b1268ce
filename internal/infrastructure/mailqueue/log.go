package mailqueue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

// LogMailer stands in for the Kafka publisher when no brokers are configured.
// Template data is not logged since it may carry an OTP.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log.With().Str("component", "mail").Logger()}
}

func (m *LogMailer) Send(_ context.Context, msg domain.MailMessage) error {
	m.log.Info().
		Str("to", msg.To).
		Str("template", msg.Template).
		Str("subject", msg.Subject).
		Msg("mail queued (log only)")
	return nil
}
