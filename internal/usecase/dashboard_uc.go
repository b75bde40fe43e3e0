package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"subsentry/internal/currency"
	"subsentry/internal/domain/model"
	"subsentry/internal/domain/ports/adapter"
	"subsentry/internal/domain/ports/repository"
	"subsentry/internal/infra/metrics"
	"subsentry/internal/renewal"
	"subsentry/internal/spend"
)

// Compile-time check
var _ DashboardUseCase = (*dashboardUC)(nil)

const (
	upcomingWindowDays = 30
	upcomingLimit      = 5
)

// UpcomingRenewal pairs a subscription with its day-count to renewal.
type UpcomingRenewal struct {
	Subscription model.Subscription
	DaysUntil    int
}

// DashboardSummary is the aggregate view a dashboard renders: rollup totals
// in the target currency plus the nearest renewals.
type DashboardSummary struct {
	TotalMonthly     decimal.Decimal
	TotalYearly      decimal.Decimal
	ActiveCount      int
	Skipped          []spend.SkipReport
	UpcomingRenewals []UpcomingRenewal
	Currency         model.Currency
}

type DashboardUseCase interface {
	Summary(ctx context.Context, userID string, target model.Currency, now time.Time) (*DashboardSummary, error)
}

type dashboardUC struct {
	subs    repository.SubscriptionRepository
	rates   adapter.RateSource
	workers int
	log     *zerolog.Logger
}

func NewDashboardUseCase(subs repository.SubscriptionRepository, rates adapter.RateSource, workers int, logger *zerolog.Logger) *dashboardUC {
	l := logger.With().Str("component", "DashboardUC").Logger()
	return &dashboardUC{subs: subs, rates: rates, workers: workers, log: &l}
}

// Summary rolls the user's active subscriptions up into monthly/yearly totals
// and collects renewals falling inside the next 30 days, nearest first,
// capped at five entries.
func (uc *dashboardUC) Summary(ctx context.Context, userID string, target model.Currency, now time.Time) (*DashboardSummary, error) {
	subs, err := uc.subs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap, err := uc.rates.Latest(ctx)
	if err != nil {
		// The fallback source normally absorbs fetch failures; a hard error
		// here still must not take the dashboard down.
		uc.log.Warn().Err(err).Msg("rate source failed, using static table")
		snap = currency.StaticFallback()
	}
	conv := currency.NewConverter(snap)

	summary, err := spend.RollupParallel(ctx, subs, target, conv.Convert, uc.workers)
	if err != nil {
		return nil, err
	}
	for _, skip := range summary.Skipped {
		uc.log.Warn().Str("subscription_id", skip.SubscriptionID).Err(skip.Reason).Msg("subscription excluded from rollup")
	}
	metrics.IncRollupsComputed()

	upcoming := upcomingRenewals(subs, now)

	return &DashboardSummary{
		TotalMonthly:     summary.TotalMonthly,
		TotalYearly:      summary.TotalYearly,
		ActiveCount:      summary.ActiveCount,
		Skipped:          summary.Skipped,
		UpcomingRenewals: upcoming,
		Currency:         target,
	}, nil
}

func upcomingRenewals(subs []model.Subscription, now time.Time) []UpcomingRenewal {
	var out []UpcomingRenewal
	for i := range subs {
		if !subs[i].Active() || subs[i].NextRenewalDate.IsZero() {
			continue
		}
		days := renewal.DaysUntil(subs[i].NextRenewalDate, now)
		if days < 0 || days > upcomingWindowDays {
			continue
		}
		out = append(out, UpcomingRenewal{Subscription: subs[i], DaysUntil: days})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysUntil < out[j].DaysUntil })
	if len(out) > upcomingLimit {
		out = out[:upcomingLimit]
	}
	return out
}
