// File: internal/usecase/subscription_uc.go
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"subsentry/internal/domain"
	"subsentry/internal/domain/model"
	"subsentry/internal/domain/ports/repository"
	"subsentry/internal/renewal"
)

// Compile-time check
var _ SubscriptionUseCase = (*subscriptionUC)(nil)

// SubscriptionInput is the raw, caller-supplied shape of a subscription.
// Everything arrives as strings; validation happens here, once.
type SubscriptionInput struct {
	Name      string
	Amount    string
	Currency  string
	Cadence   string
	StartDate string // ISO-8601 calendar date
	Category  string
}

type SubscriptionUseCase interface {
	Create(ctx context.Context, userID string, in SubscriptionInput, now time.Time) (*model.Subscription, error)
	Update(ctx context.Context, userID, id string, in SubscriptionInput, now time.Time) (*model.Subscription, error)
	Get(ctx context.Context, userID, id string) (*model.Subscription, error)
	List(ctx context.Context, userID string) ([]model.Subscription, error)
	Delete(ctx context.Context, userID, id string) error
	SetStatus(ctx context.Context, userID, id string, status model.Status) (*model.Subscription, error)
}

type subscriptionUC struct {
	subs repository.SubscriptionRepository
	log  *zerolog.Logger
}

func NewSubscriptionUseCase(subs repository.SubscriptionRepository, logger *zerolog.Logger) *subscriptionUC {
	l := logger.With().Str("component", "SubscriptionUC").Logger()
	return &subscriptionUC{subs: subs, log: &l}
}

// Create validates the input, derives the first renewal date through the
// projector and persists the subscription. Every creation path routes through
// here so no caller computes its own renewal date.
func (uc *subscriptionUC) Create(ctx context.Context, userID string, in SubscriptionInput, now time.Time) (*model.Subscription, error) {
	amount, cur, cad, start, err := parseInput(in)
	if err != nil {
		return nil, err
	}

	sub, err := model.NewSubscription(uuid.NewString(), userID, in.Name, amount, cur, cad, start)
	if err != nil {
		return nil, err
	}
	sub.Category = in.Category

	next, err := renewal.NextOccurrence(sub.StartDate, sub.Cadence, now)
	if err != nil {
		return nil, err
	}
	sub.NextRenewalDate = next

	if err := uc.subs.Save(ctx, sub); err != nil {
		return nil, err
	}
	uc.log.Info().Str("subscription_id", sub.ID).Str("cadence", string(sub.Cadence)).Msg("subscription created")
	return sub, nil
}

// Update re-validates and re-derives the renewal date: a changed start date
// or cadence invalidates the stored projection immediately.
func (uc *subscriptionUC) Update(ctx context.Context, userID, id string, in SubscriptionInput, now time.Time) (*model.Subscription, error) {
	sub, err := uc.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	amount, cur, cad, start, err := parseInput(in)
	if err != nil {
		return nil, err
	}

	sub.Name = in.Name
	sub.Amount = amount
	sub.Currency = cur
	sub.Cadence = cad
	sub.StartDate = start
	sub.Category = in.Category
	sub.UpdatedAt = now.UTC()

	next, err := renewal.NextOccurrence(sub.StartDate, sub.Cadence, now)
	if err != nil {
		return nil, err
	}
	sub.NextRenewalDate = next

	if err := uc.subs.Save(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (uc *subscriptionUC) Get(ctx context.Context, userID, id string) (*model.Subscription, error) {
	sub, err := uc.subs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Row-level ownership is enforced by storage in production; this check
	// keeps the engine safe against misrouted ids.
	if sub.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return sub, nil
}

func (uc *subscriptionUC) List(ctx context.Context, userID string) ([]model.Subscription, error) {
	return uc.subs.ListByUser(ctx, userID)
}

func (uc *subscriptionUC) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.Get(ctx, userID, id); err != nil {
		return err
	}
	return uc.subs.Delete(ctx, id)
}

func (uc *subscriptionUC) SetStatus(ctx context.Context, userID, id string, status model.Status) (*model.Subscription, error) {
	sub, err := uc.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	sub.Status = status
	sub.UpdatedAt = time.Now().UTC()
	if err := uc.subs.Save(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func parseInput(in SubscriptionInput) (decimal.Decimal, model.Currency, model.Cadence, time.Time, error) {
	amount, err := decimal.NewFromString(in.Amount)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, "", "", time.Time{}, domain.ErrInvalidAmount
	}
	cur, err := model.ParseCurrency(in.Currency)
	if err != nil {
		return decimal.Zero, "", "", time.Time{}, err
	}
	cad, err := model.ParseCadence(in.Cadence)
	if err != nil {
		return decimal.Zero, "", "", time.Time{}, err
	}
	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return decimal.Zero, "", "", time.Time{}, domain.ErrInvalidDate
	}
	return amount, cur, cad, model.DateOnly(start), nil
}
