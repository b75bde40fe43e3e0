package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"subsentry/internal/domain/model"
)

// ReminderMessage carries everything the external mail transport needs to
// render a renewal reminder.
type ReminderMessage struct {
	UserID           string
	SubscriptionID   string
	SubscriptionName string
	Amount           decimal.Decimal
	Currency         model.Currency
	DaysAhead        int
}

// Mailer delivers renewal reminders through the external mail transport.
type Mailer interface {
	SendRenewalReminder(ctx context.Context, msg ReminderMessage) error
}
