package currency

import (
	"time"

	"github.com/shopspring/decimal"

	"subsentry/internal/domain/model"
)

// SourceFallback marks snapshots built from the static table.
const SourceFallback = "static-fallback"

// StaticFallback returns the hardcoded last-known rate table, USD-relative.
// Approximate rates, updated quarterly by the upstream source. Used when the
// live rate service is unreachable: availability over precision.
func StaticFallback() Snapshot {
	return Snapshot{
		Base: model.USD,
		Rates: map[model.Currency]decimal.Decimal{
			model.USD: decimal.NewFromInt(1),
			model.EUR: decimal.NewFromFloat(0.92),
			model.GBP: decimal.NewFromFloat(0.79),
			model.INR: decimal.NewFromFloat(83.12),
			model.CAD: decimal.NewFromFloat(1.36),
			model.AUD: decimal.NewFromFloat(1.53),
			model.JPY: decimal.NewFromFloat(149.50),
			model.CNY: decimal.NewFromFloat(7.24),
			model.CHF: decimal.NewFromFloat(0.88),
			model.SGD: decimal.NewFromFloat(1.34),
		},
		FetchedAt: time.Time{}, // zero: always considered stale
		Source:    SourceFallback,
	}
}
