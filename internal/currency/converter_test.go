//go:build !integration

package currency_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"subsentry/internal/currency"
	"subsentry/internal/domain"
	"subsentry/internal/domain/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestConverter(t *testing.T) {
	conv := currency.NewConverter(currency.StaticFallback())

	t.Run("same currency is identity", func(t *testing.T) {
		got, err := conv.Convert(dec("9.99"), model.USD, model.USD)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(dec("9.99")) {
			t.Errorf("expected 9.99, got %s", got)
		}
	})

	t.Run("base to target multiplies by the target rate", func(t *testing.T) {
		got, err := conv.Convert(dec("100"), model.USD, model.EUR)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(dec("92")) {
			t.Errorf("expected 92, got %s", got)
		}
	})

	t.Run("cross rates pivot through the base", func(t *testing.T) {
		got, err := conv.Convert(dec("100"), model.EUR, model.GBP)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 100 / 0.92 * 0.79
		want := dec("100").Div(dec("0.92")).Mul(dec("0.79"))
		if !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("pivot there and back recovers the amount", func(t *testing.T) {
		mid, err := conv.Convert(dec("250"), model.USD, model.JPY)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		back, err := conv.Convert(mid, model.JPY, model.USD)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if back.Sub(dec("250")).Abs().GreaterThan(dec("0.0000001")) {
			t.Errorf("expected about 250, got %s", back)
		}
	})

	t.Run("missing source currency errors", func(t *testing.T) {
		_, err := conv.Convert(dec("10"), model.Currency("XXX"), model.USD)
		if !errors.Is(err, domain.ErrUnsupportedCurrency) {
			t.Errorf("expected ErrUnsupportedCurrency, got %v", err)
		}
	})

	t.Run("missing target currency errors", func(t *testing.T) {
		_, err := conv.Convert(dec("10"), model.USD, model.Currency("XXX"))
		if !errors.Is(err, domain.ErrUnsupportedCurrency) {
			t.Errorf("expected ErrUnsupportedCurrency, got %v", err)
		}
	})
}

func TestStaticFallback(t *testing.T) {
	snap := currency.StaticFallback()

	t.Run("covers every supported currency", func(t *testing.T) {
		for _, cur := range model.SupportedCurrencies() {
			rate, ok := snap.Rates[cur]
			if !ok {
				t.Errorf("missing rate for %s", cur)
				continue
			}
			if !rate.IsPositive() {
				t.Errorf("non-positive rate for %s: %s", cur, rate)
			}
		}
	})

	t.Run("base is USD at rate one", func(t *testing.T) {
		if snap.Base != model.USD {
			t.Errorf("expected USD base, got %s", snap.Base)
		}
		if !snap.Rates[model.USD].Equal(dec("1")) {
			t.Errorf("expected USD rate 1, got %s", snap.Rates[model.USD])
		}
	})

	t.Run("is always stale", func(t *testing.T) {
		if !snap.Stale(time.Now(), 24*time.Hour) {
			t.Error("fallback snapshot should never pass a freshness check")
		}
	})
}

func TestSnapshotStale(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	snap := currency.Snapshot{FetchedAt: now.Add(-23 * time.Hour)}
	if snap.Stale(now, 24*time.Hour) {
		t.Error("snapshot inside the ttl reported stale")
	}
	snap.FetchedAt = now.Add(-25 * time.Hour)
	if !snap.Stale(now, 24*time.Hour) {
		t.Error("snapshot beyond the ttl reported fresh")
	}
}
