// Package spend normalizes heterogeneous billing cadences onto a common
// monthly/yearly basis and rolls them up across a subscription set.
package spend

import (
	"github.com/shopspring/decimal"

	"subsentry/internal/domain"
	"subsentry/internal/domain/model"
)

// Conversion factors are fixed constants shared by every call site.
// Weekly-to-monthly uses the average-weeks-per-month factor 52/12 (4.3333...),
// not a fixed 4 and not a calendar-accurate count.
var (
	weeksPerYear  = decimal.NewFromInt(52)
	monthsPerYear = decimal.NewFromInt(12)
	weeksPerMonth = weeksPerYear.Div(monthsPerYear)
)

// ToMonthly converts a per-cycle amount to its monthly-equivalent figure.
// No rounding is applied; rounding happens once, at final aggregation.
func ToMonthly(amount decimal.Decimal, cadence model.Cadence) (decimal.Decimal, error) {
	switch cadence {
	case model.CadenceWeekly:
		return amount.Mul(weeksPerMonth), nil
	case model.CadenceMonthly:
		return amount, nil
	case model.CadenceYearly:
		return amount.Div(monthsPerYear), nil
	default:
		return decimal.Zero, domain.ErrInvalidCadence
	}
}

// ToYearly converts a per-cycle amount to its yearly-equivalent figure.
func ToYearly(amount decimal.Decimal, cadence model.Cadence) (decimal.Decimal, error) {
	switch cadence {
	case model.CadenceWeekly:
		return amount.Mul(weeksPerYear), nil
	case model.CadenceMonthly:
		return amount.Mul(monthsPerYear), nil
	case model.CadenceYearly:
		return amount, nil
	default:
		return decimal.Zero, domain.ErrInvalidCadence
	}
}

// MonthlyToYearly converts a monthly-equivalent figure to yearly.
func MonthlyToYearly(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(monthsPerYear)
}

// RoundAmount rounds a monetary figure to 2 decimal places, half up (not
// banker's rounding). It is applied exactly once per aggregate, after
// summation, never per intermediate step.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
