package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"subsentry/internal/domain/ports/repository"
	"subsentry/internal/infra/metrics"
	"subsentry/internal/renewal"
)

// Compile-time check
var _ RenewalUseCase = (*renewalUC)(nil)

type RenewalUseCase interface {
	// RefreshStale recomputes and persists next_renewal_date for every
	// active subscription whose stored value has fallen on or before now.
	// Returns the number of rows refreshed.
	RefreshStale(ctx context.Context, now time.Time) (int, error)
}

type renewalUC struct {
	subs repository.SubscriptionRepository
	log  *zerolog.Logger
}

func NewRenewalUseCase(subs repository.SubscriptionRepository, logger *zerolog.Logger) *renewalUC {
	l := logger.With().Str("component", "RenewalUC").Logger()
	return &renewalUC{subs: subs, log: &l}
}

func (uc *renewalUC) RefreshStale(ctx context.Context, now time.Time) (int, error) {
	stale, err := uc.subs.ListStaleRenewals(ctx, now)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	skipped := 0
	for i := range stale {
		sub := &stale[i]
		next, err := renewal.NextOccurrence(sub.StartDate, sub.Cadence, now)
		if err != nil {
			// Bad rows must not poison the batch: skip and report.
			skipped++
			uc.log.Warn().Str("subscription_id", sub.ID).Err(err).Msg("cannot project renewal, skipping")
			continue
		}
		if err := uc.subs.UpdateNextRenewal(ctx, sub.ID, next); err != nil {
			skipped++
			uc.log.Warn().Str("subscription_id", sub.ID).Err(err).Msg("failed to persist renewal date")
			continue
		}
		refreshed++
	}

	if refreshed > 0 {
		metrics.IncRenewalsRefreshed(refreshed)
	}
	if skipped > 0 {
		metrics.IncRenewalRefreshSkips(skipped)
	}
	return refreshed, nil
}
