// Package currency converts monetary amounts between supported currencies
// against an explicitly injected, time-stamped rate snapshot.
//
// The snapshot replaces the module-level mutable cache the dashboard used to
// share: refresh policy belongs to the calling layer, the conversion itself
// stays a pure function of its inputs.
package currency

import (
	"time"

	"github.com/shopspring/decimal"

	"subsentry/internal/domain"
	"subsentry/internal/domain/model"
)

// Snapshot is a point-in-time rate table relative to a base currency.
type Snapshot struct {
	Base      model.Currency                     `json:"base"`
	Rates     map[model.Currency]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                          `json:"fetched_at"`
	Source    string                             `json:"source"`
}

// Stale reports whether the snapshot is older than ttl at the given instant.
func (s Snapshot) Stale(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.FetchedAt) >= ttl
}

// Converter converts amounts against a fixed snapshot. Conversions pivot
// through the snapshot base: amount / rate[from] * rate[to].
type Converter struct {
	snap Snapshot
}

func NewConverter(snap Snapshot) *Converter {
	return &Converter{snap: snap}
}

// Convert returns amount expressed in the target currency. The result is not
// rounded; rounding belongs to final aggregation. A currency missing from the
// snapshot yields ErrUnsupportedCurrency.
func (c *Converter) Convert(amount decimal.Decimal, from, to model.Currency) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	rateFrom, ok := c.snap.Rates[from]
	if !ok || rateFrom.IsZero() {
		return decimal.Zero, domain.ErrUnsupportedCurrency
	}
	rateTo, ok := c.snap.Rates[to]
	if !ok {
		return decimal.Zero, domain.ErrUnsupportedCurrency
	}
	return amount.Div(rateFrom).Mul(rateTo), nil
}

// Snapshot returns the snapshot the converter was built from.
func (c *Converter) Snapshot() Snapshot { return c.snap }
