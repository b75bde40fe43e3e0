package repository

import (
	"context"
	"time"
)

// -----------------------------
// Reminder log
// -----------------------------

// ReminderLogRepository records sent renewal reminders so a subscription is
// reminded at most once per renewal date.
type ReminderLogRepository interface {
	// Save records that a reminder was sent for the given renewal date.
	Save(ctx context.Context, id, subscriptionID, userID string, renewalDate time.Time) error
	// Exists checks whether a reminder for this subscription and renewal
	// date has already been sent.
	Exists(ctx context.Context, subscriptionID string, renewalDate time.Time) (bool, error)
}
