package adapter

import (
	"context"

	"subsentry/internal/currency"
)

// RateSource supplies a point-in-time currency rate snapshot. The core does
// not assume freshness and tolerates staleness silently; refresh policy is
// the implementation's concern.
type RateSource interface {
	Latest(ctx context.Context) (currency.Snapshot, error)
}
