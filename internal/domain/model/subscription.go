package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"subsentry/internal/domain"
)

// Cadence is the recurring billing interval. The set is closed: there are no
// custom intervals.
type Cadence string

const (
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
	CadenceYearly  Cadence = "yearly"
)

// ParseCadence validates a raw cadence string against the closed set.
func ParseCadence(s string) (Cadence, error) {
	switch Cadence(strings.ToLower(strings.TrimSpace(s))) {
	case CadenceWeekly:
		return CadenceWeekly, nil
	case CadenceMonthly:
		return CadenceMonthly, nil
	case CadenceYearly:
		return CadenceYearly, nil
	default:
		return "", domain.ErrInvalidCadence
	}
}

// Valid reports whether c is a member of the closed cadence set.
func (c Cadence) Valid() bool {
	switch c {
	case CadenceWeekly, CadenceMonthly, CadenceYearly:
		return true
	}
	return false
}

type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, nil
	case StatusPaused:
		return StatusPaused, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", domain.ErrInvalidArgument
	}
}

// Currency is a three-letter ISO code from the fixed supported set.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	INR Currency = "INR"
	CAD Currency = "CAD"
	AUD Currency = "AUD"
	JPY Currency = "JPY"
	CNY Currency = "CNY"
	CHF Currency = "CHF"
	SGD Currency = "SGD"
)

var supportedCurrencies = map[Currency]struct{}{
	USD: {}, EUR: {}, GBP: {}, INR: {}, CAD: {},
	AUD: {}, JPY: {}, CNY: {}, CHF: {}, SGD: {},
}

func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := supportedCurrencies[c]; !ok {
		return "", domain.ErrUnsupportedCurrency
	}
	return c, nil
}

func (c Currency) Supported() bool {
	_, ok := supportedCurrencies[c]
	return ok
}

// SupportedCurrencies returns the fixed supported set in stable order.
func SupportedCurrencies() []Currency {
	return []Currency{USD, EUR, GBP, INR, CAD, AUD, JPY, CNY, CHF, SGD}
}

// Subscription is a recurring payment registered by a user. The renewal date
// is derived, never authoritative: it must be recomputed whenever "now"
// advances past the stored value or StartDate/Cadence change.
type Subscription struct {
	ID              string // UUID
	UserID          string
	Name            string
	Amount          decimal.Decimal // charge per billing cycle, in Currency
	Currency        Currency
	Cadence         Cadence
	StartDate       time.Time // calendar date, no time-of-day significance
	NextRenewalDate time.Time // derived from (StartDate, Cadence, now)
	Status          Status
	Category        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewSubscription builds a validated subscription. NextRenewalDate is left
// zero; callers derive it through the renewal projector.
func NewSubscription(id, userID, name string, amount decimal.Decimal, cur Currency, cad Cadence, start time.Time) (*Subscription, error) {
	s := &Subscription{
		ID:        id,
		UserID:    userID,
		Name:      name,
		Amount:    amount,
		Currency:  cur,
		Cadence:   cad,
		StartDate: DateOnly(start),
	}
	if id == "" || userID == "" || name == "" {
		return nil, domain.ErrInvalidArgument
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.Status = StatusActive
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	return s, nil
}

// Validate checks the invariants the spend and renewal engines rely on.
func (s *Subscription) Validate() error {
	if !s.Amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if !s.Currency.Supported() {
		return domain.ErrUnsupportedCurrency
	}
	if !s.Cadence.Valid() {
		return domain.ErrInvalidCadence
	}
	if s.StartDate.IsZero() {
		return domain.ErrInvalidDate
	}
	return nil
}

// Active reports whether the subscription contributes to aggregate spend.
func (s *Subscription) Active() bool { return s.Status == StatusActive }

// DateOnly truncates t to a UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
