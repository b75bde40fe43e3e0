package mail

import (
	"context"

	"github.com/rs/zerolog"

	"subsentry/internal/domain/ports/adapter"
)

// NoopMailer logs reminders instead of delivering them. Used in dev mode and
// when no mail transport endpoint is configured.
type NoopMailer struct {
	log *zerolog.Logger
}

var _ adapter.Mailer = (*NoopMailer)(nil)

func NewNoopMailer(logger *zerolog.Logger) *NoopMailer {
	l := logger.With().Str("component", "NoopMailer").Logger()
	return &NoopMailer{log: &l}
}

func (m *NoopMailer) SendRenewalReminder(_ context.Context, msg adapter.ReminderMessage) error {
	m.log.Info().
		Str("subscription_id", msg.SubscriptionID).
		Str("name", msg.SubscriptionName).
		Int("days_ahead", msg.DaysAhead).
		Msg("reminder suppressed (noop mailer)")
	return nil
}
