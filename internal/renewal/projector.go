// Package renewal projects the next occurrence of a recurring billing date.
//
// All functions are pure: "now" is always supplied by the caller, never read
// from the system clock, so projections are deterministic and testable.
package renewal

import (
	"time"

	"subsentry/internal/domain"
	"subsentry/internal/domain/model"
)

// NextOccurrence returns the first occurrence of the cadence anchored at
// anchor that lies strictly after now. If anchor itself is already strictly
// after now, it is returned unchanged.
//
// Monthly advances clamp to month length but re-anchor each step off the
// anchor's original day-of-month, so Jan 31 projects Feb 28 (or 29) and then
// Mar 31, not Mar 28. Yearly behaves the same for Feb 29 anchors.
//
// Old anchors are skipped in closed form rather than stepped one unit at a
// time; the result is identical to the iterative advance.
func NextOccurrence(anchor time.Time, cadence model.Cadence, now time.Time) (time.Time, error) {
	if anchor.IsZero() {
		return time.Time{}, domain.ErrInvalidDate
	}
	a := model.DateOnly(anchor)
	n := model.DateOnly(now)

	if a.After(n) {
		return a, nil
	}

	switch cadence {
	case model.CadenceWeekly:
		// Whole weeks elapsed, then one more to land strictly after now.
		elapsedDays := int(n.Sub(a).Hours() / 24)
		steps := elapsedDays/7 + 1
		return a.AddDate(0, 0, 7*steps), nil

	case model.CadenceMonthly:
		months := (n.Year()-a.Year())*12 + int(n.Month()) - int(a.Month())
		if months < 0 {
			months = 0
		}
		candidate := addMonthsClamped(a, months)
		// Clamping can leave the candidate on or before now; at most two
		// further advances are needed.
		for !candidate.After(n) {
			months++
			candidate = addMonthsClamped(a, months)
		}
		return candidate, nil

	case model.CadenceYearly:
		years := n.Year() - a.Year()
		if years < 0 {
			years = 0
		}
		candidate := addYearsClamped(a, years)
		for !candidate.After(n) {
			years++
			candidate = addYearsClamped(a, years)
		}
		return candidate, nil

	default:
		return time.Time{}, domain.ErrInvalidCadence
	}
}

// DaysUntil returns ceil(target - now) in whole days. Negative when target is
// in the past; callers decide whether negatives are filtered out.
func DaysUntil(target, now time.Time) int {
	diff := model.DateOnly(target).Sub(now.UTC())
	days := int(diff.Hours() / 24)
	if diff > 0 && diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// addMonthsClamped lands months after anchor, keeping the anchor's
// day-of-month and clamping to the target month's length. time.AddDate is
// avoided because it normalizes Jan 31 + 1 month to Mar 2/3.
func addMonthsClamped(anchor time.Time, months int) time.Time {
	y, m, d := anchor.Date()
	total := int(m) - 1 + months
	year := y + total/12
	month := time.Month(total%12 + 1)
	return time.Date(year, month, clampDay(year, month, d), 0, 0, 0, 0, time.UTC)
}

func addYearsClamped(anchor time.Time, years int) time.Time {
	y, m, d := anchor.Date()
	year := y + years
	return time.Date(year, m, clampDay(year, m, d), 0, 0, 0, 0, time.UTC)
}

func clampDay(year int, month time.Month, day int) int {
	last := daysIn(year, month)
	if day > last {
		return last
	}
	return day
}

// daysIn uses the day-zero normalization trick: day 0 of the next month is
// the last day of this one.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
