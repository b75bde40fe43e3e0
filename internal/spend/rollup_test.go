//go:build !integration

package spend_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"subsentry/internal/domain"
	"subsentry/internal/domain/model"
	"subsentry/internal/spend"
)

func monthlySub(id, amount string, currency model.Currency) model.Subscription {
	return model.Subscription{
		ID:       id,
		UserID:   "u1",
		Name:     id,
		Amount:   dec(amount),
		Currency: currency,
		Cadence:  model.CadenceMonthly,
		Status:   model.StatusActive,
	}
}

func TestRollup(t *testing.T) {
	t.Run("sums then rounds once", func(t *testing.T) {
		subs := []model.Subscription{
			monthlySub("a", "10.005", model.USD),
			monthlySub("b", "10.005", model.USD),
			monthlySub("c", "10.005", model.USD),
		}
		got := spend.Rollup(subs, model.USD, nil)
		// 30.015 rounded once is 30.02. Rounding each item first would
		// give 10.01 * 3 = 30.03.
		if !got.TotalMonthly.Equal(dec("30.02")) {
			t.Errorf("expected 30.02, got %s", got.TotalMonthly)
		}
		if !got.TotalYearly.Equal(dec("360.18")) {
			t.Errorf("expected 360.18, got %s", got.TotalYearly)
		}
	})

	t.Run("ignores paused and cancelled subscriptions", func(t *testing.T) {
		paused := monthlySub("p", "100", model.USD)
		paused.Status = model.StatusPaused
		cancelled := monthlySub("c", "100", model.USD)
		cancelled.Status = model.StatusCancelled

		got := spend.Rollup([]model.Subscription{
			monthlySub("a", "10", model.USD), paused, cancelled,
		}, model.USD, nil)

		if got.ActiveCount != 1 {
			t.Errorf("expected ActiveCount 1, got %d", got.ActiveCount)
		}
		if !got.TotalMonthly.Equal(dec("10")) {
			t.Errorf("expected 10, got %s", got.TotalMonthly)
		}
	})

	t.Run("skips and reports instead of aborting", func(t *testing.T) {
		bad := monthlySub("bad", "10", model.Currency("XXX"))
		got := spend.Rollup([]model.Subscription{
			monthlySub("a", "10", model.USD),
			bad,
			monthlySub("b", "5", model.USD),
		}, model.USD, nil)

		if !got.TotalMonthly.Equal(dec("15")) {
			t.Errorf("expected 15, got %s", got.TotalMonthly)
		}
		if len(got.Skipped) != 1 {
			t.Fatalf("expected 1 skip, got %d", len(got.Skipped))
		}
		if got.Skipped[0].SubscriptionID != "bad" {
			t.Errorf("expected skip for %q, got %q", "bad", got.Skipped[0].SubscriptionID)
		}
		if !errors.Is(got.Skipped[0].Reason, domain.ErrUnsupportedCurrency) {
			t.Errorf("expected ErrUnsupportedCurrency, got %v", got.Skipped[0].Reason)
		}
	})

	t.Run("skipped subscriptions still count as active", func(t *testing.T) {
		got := spend.Rollup([]model.Subscription{
			monthlySub("a", "10", model.USD),
			monthlySub("bad", "10", model.Currency("XXX")),
		}, model.USD, nil)
		if got.ActiveCount != 2 {
			t.Errorf("expected ActiveCount 2, got %d", got.ActiveCount)
		}
	})

	t.Run("conversion failure skips the subscription", func(t *testing.T) {
		failing := func(amount decimal.Decimal, from, to model.Currency) (decimal.Decimal, error) {
			return decimal.Zero, domain.ErrConversionUnavailable
		}
		got := spend.Rollup([]model.Subscription{
			monthlySub("a", "10", model.USD),
			monthlySub("b", "10", model.EUR),
		}, model.USD, failing)

		if !got.TotalMonthly.Equal(dec("10")) {
			t.Errorf("expected 10, got %s", got.TotalMonthly)
		}
		if len(got.Skipped) != 1 || got.Skipped[0].SubscriptionID != "b" {
			t.Errorf("expected a single skip for %q, got %+v", "b", got.Skipped)
		}
	})

	t.Run("mixed cadences normalize before summing", func(t *testing.T) {
		weekly := monthlySub("w", "10", model.USD)
		weekly.Cadence = model.CadenceWeekly
		yearly := monthlySub("y", "120", model.USD)
		yearly.Cadence = model.CadenceYearly

		got := spend.Rollup([]model.Subscription{weekly, yearly}, model.USD, nil)
		// 10 * 52/12 + 120/12 = 43.333... + 10 = 53.33 after rounding.
		if !got.TotalMonthly.Equal(dec("53.33")) {
			t.Errorf("expected 53.33, got %s", got.TotalMonthly)
		}
		// 10 * 52 + 120 = 640.
		if !got.TotalYearly.Equal(dec("640")) {
			t.Errorf("expected 640, got %s", got.TotalYearly)
		}
	})
}

func TestRollupParallel(t *testing.T) {
	t.Run("matches the serial rollup", func(t *testing.T) {
		subs := make([]model.Subscription, 0, 40)
		for i := 0; i < 40; i++ {
			s := monthlySub(string(rune('a'+i%26)), "10.005", model.USD)
			if i%5 == 0 {
				s.Cadence = model.CadenceWeekly
			}
			if i%7 == 0 {
				s.Status = model.StatusPaused
			}
			subs = append(subs, s)
		}

		serial := spend.Rollup(subs, model.USD, nil)
		parallel, err := spend.RollupParallel(context.Background(), subs, model.USD, nil, 4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !parallel.TotalMonthly.Equal(serial.TotalMonthly) {
			t.Errorf("monthly mismatch: parallel %s, serial %s", parallel.TotalMonthly, serial.TotalMonthly)
		}
		if !parallel.TotalYearly.Equal(serial.TotalYearly) {
			t.Errorf("yearly mismatch: parallel %s, serial %s", parallel.TotalYearly, serial.TotalYearly)
		}
		if parallel.ActiveCount != serial.ActiveCount {
			t.Errorf("count mismatch: parallel %d, serial %d", parallel.ActiveCount, serial.ActiveCount)
		}
	})

	t.Run("empty set yields zero totals", func(t *testing.T) {
		got, err := spend.RollupParallel(context.Background(), nil, model.USD, nil, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.TotalMonthly.IsZero() || !got.TotalYearly.IsZero() || got.ActiveCount != 0 {
			t.Errorf("expected zero summary, got %+v", got)
		}
	})
}
