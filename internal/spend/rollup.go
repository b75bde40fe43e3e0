package spend

import (
	"context"
	"runtime"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"subsentry/internal/domain"
	"subsentry/internal/domain/model"
)

// ConvertFunc converts an amount between currencies against some rate
// snapshot. Implementations must be deterministic for a given snapshot.
type ConvertFunc func(amount decimal.Decimal, from, to model.Currency) (decimal.Decimal, error)

// SkipReport records a subscription excluded from the rollup totals and why.
type SkipReport struct {
	SubscriptionID string
	Reason         error
}

// Summary holds rollup totals for a subscription set. TotalMonthly and
// TotalYearly carry the single final rounding; ActiveCount counts every
// active subscription considered, including ones whose conversion failed.
type Summary struct {
	TotalMonthly decimal.Decimal
	TotalYearly  decimal.Decimal
	ActiveCount  int
	Skipped      []SkipReport
}

// Rollup filters to active subscriptions, converts each amount into the
// target currency, normalizes by cadence and sums. The totals are rounded
// once, after summation: rounding per item and then summing can diverge from
// summing and rounding once, so intermediate figures stay exact.
//
// A subscription with an invalid cadence or an unsupported currency is
// skipped and reported rather than aborting the whole batch.
func Rollup(subs []model.Subscription, target model.Currency, convert ConvertFunc) Summary {
	sum := Summary{TotalMonthly: decimal.Zero, TotalYearly: decimal.Zero}
	for i := range subs {
		sub := &subs[i]
		if !sub.Active() {
			continue
		}
		sum.ActiveCount++

		monthly, yearly, err := contribution(sub, target, convert)
		if err != nil {
			sum.Skipped = append(sum.Skipped, SkipReport{SubscriptionID: sub.ID, Reason: err})
			continue
		}
		sum.TotalMonthly = sum.TotalMonthly.Add(monthly)
		sum.TotalYearly = sum.TotalYearly.Add(yearly)
	}
	sum.TotalMonthly = RoundAmount(sum.TotalMonthly)
	sum.TotalYearly = RoundAmount(sum.TotalYearly)
	return sum
}

// RollupParallel computes the same summary as Rollup with per-subscription
// fan-out. Contributions are reduced in index order so the result is
// deterministic, and rounding is still deferred to the very end.
func RollupParallel(ctx context.Context, subs []model.Subscription, target model.Currency, convert ConvertFunc, workers int) (Summary, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type result struct {
		monthly decimal.Decimal
		yearly  decimal.Decimal
		err     error
	}
	results := make([]result, len(subs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range subs {
		if !subs[i].Active() {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, y, err := contribution(&subs[i], target, convert)
			results[i] = result{monthly: m, yearly: y, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	sum := Summary{TotalMonthly: decimal.Zero, TotalYearly: decimal.Zero}
	for i := range subs {
		if !subs[i].Active() {
			continue
		}
		sum.ActiveCount++
		if err := results[i].err; err != nil {
			sum.Skipped = append(sum.Skipped, SkipReport{SubscriptionID: subs[i].ID, Reason: err})
			continue
		}
		sum.TotalMonthly = sum.TotalMonthly.Add(results[i].monthly)
		sum.TotalYearly = sum.TotalYearly.Add(results[i].yearly)
	}
	sum.TotalMonthly = RoundAmount(sum.TotalMonthly)
	sum.TotalYearly = RoundAmount(sum.TotalYearly)
	return sum, nil
}

func contribution(sub *model.Subscription, target model.Currency, convert ConvertFunc) (monthly, yearly decimal.Decimal, err error) {
	if !sub.Currency.Supported() {
		return decimal.Zero, decimal.Zero, domain.ErrUnsupportedCurrency
	}
	amount := sub.Amount
	if convert != nil && sub.Currency != target {
		amount, err = convert(amount, sub.Currency, target)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
	}
	monthly, err = ToMonthly(amount, sub.Cadence)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	yearly, err = ToYearly(amount, sub.Cadence)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return monthly, yearly, nil
}
