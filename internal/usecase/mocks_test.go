//go:build !integration

package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"subsentry/internal/currency"
	"subsentry/internal/domain"
	"subsentry/internal/domain/model"
	"subsentry/internal/domain/ports/adapter"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

type mockSubscriptionRepo struct {
	SaveFunc              func(ctx context.Context, sub *model.Subscription) error
	FindByIDFunc          func(ctx context.Context, id string) (*model.Subscription, error)
	ListByUserFunc        func(ctx context.Context, userID string) ([]model.Subscription, error)
	DeleteFunc            func(ctx context.Context, id string) error
	ListStaleRenewalsFunc func(ctx context.Context, now time.Time) ([]model.Subscription, error)
	ListRenewingOnFunc    func(ctx context.Context, date time.Time) ([]model.Subscription, error)
	UpdateNextRenewalFunc func(ctx context.Context, id string, next time.Time) error
}

func (m *mockSubscriptionRepo) Save(ctx context.Context, sub *model.Subscription) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubscriptionRepo) FindByID(ctx context.Context, id string) (*model.Subscription, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockSubscriptionRepo) ListByUser(ctx context.Context, userID string) ([]model.Subscription, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockSubscriptionRepo) ListStaleRenewals(ctx context.Context, now time.Time) ([]model.Subscription, error) {
	if m.ListStaleRenewalsFunc != nil {
		return m.ListStaleRenewalsFunc(ctx, now)
	}
	return nil, nil
}

func (m *mockSubscriptionRepo) ListRenewingOn(ctx context.Context, date time.Time) ([]model.Subscription, error) {
	if m.ListRenewingOnFunc != nil {
		return m.ListRenewingOnFunc(ctx, date)
	}
	return nil, nil
}

func (m *mockSubscriptionRepo) UpdateNextRenewal(ctx context.Context, id string, next time.Time) error {
	if m.UpdateNextRenewalFunc != nil {
		return m.UpdateNextRenewalFunc(ctx, id, next)
	}
	return nil
}

type mockReminderLog struct {
	SaveFunc   func(ctx context.Context, id, subscriptionID, userID string, renewalDate time.Time) error
	ExistsFunc func(ctx context.Context, subscriptionID string, renewalDate time.Time) (bool, error)
}

func (m *mockReminderLog) Save(ctx context.Context, id, subscriptionID, userID string, renewalDate time.Time) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, id, subscriptionID, userID, renewalDate)
	}
	return nil
}

func (m *mockReminderLog) Exists(ctx context.Context, subscriptionID string, renewalDate time.Time) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, subscriptionID, renewalDate)
	}
	return false, nil
}

type mockRateSource struct {
	LatestFunc func(ctx context.Context) (currency.Snapshot, error)
}

func (m *mockRateSource) Latest(ctx context.Context) (currency.Snapshot, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx)
	}
	return currency.StaticFallback(), nil
}

type mockMailer struct {
	SendFunc func(ctx context.Context, msg adapter.ReminderMessage) error
}

func (m *mockMailer) SendRenewalReminder(ctx context.Context, msg adapter.ReminderMessage) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return nil
}
