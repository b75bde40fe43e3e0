package repository

import (
	"context"
	"time"

	"subsentry/internal/domain/model"
)

// SubscriptionRepository is the port for subscription records. The engine
// only reads through it and writes back recomputed renewal dates; ownership
// of the rows stays with the storage layer.
type SubscriptionRepository interface {
	Save(ctx context.Context, sub *model.Subscription) error
	FindByID(ctx context.Context, id string) (*model.Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]model.Subscription, error)
	Delete(ctx context.Context, id string) error

	// ListStaleRenewals returns active subscriptions whose stored
	// next_renewal_date is on or before now and must be recomputed.
	ListStaleRenewals(ctx context.Context, now time.Time) ([]model.Subscription, error)

	// ListRenewingOn returns active subscriptions renewing on the given
	// calendar date.
	ListRenewingOn(ctx context.Context, date time.Time) ([]model.Subscription, error)

	// UpdateNextRenewal persists a freshly derived renewal date.
	UpdateNextRenewal(ctx context.Context, id string, next time.Time) error
}
