package usecase

import (
	"context"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"subsentry/internal/domain/model"
	"subsentry/internal/domain/ports/adapter"
	"subsentry/internal/domain/ports/repository"
	"subsentry/internal/infra/metrics"
	"subsentry/internal/infra/worker"
)

// Compile-time check
var _ ReminderUseCase = (*reminderUC)(nil)

type ReminderUseCase interface {
	// SendDue delivers reminders for active subscriptions renewing exactly
	// leadDays after now. A subscription is reminded at most once per
	// renewal date. Returns the number of reminders sent.
	SendDue(ctx context.Context, now time.Time, leadDays int) (int, error)
}

type reminderUC struct {
	subs   repository.SubscriptionRepository
	sent   repository.ReminderLogRepository
	mailer adapter.Mailer
	pool   *worker.Pool
	log    *zerolog.Logger
}

func NewReminderUseCase(subs repository.SubscriptionRepository, sent repository.ReminderLogRepository, mailer adapter.Mailer, pool *worker.Pool, logger *zerolog.Logger) *reminderUC {
	l := logger.With().Str("component", "ReminderUC").Logger()
	return &reminderUC{subs: subs, sent: sent, mailer: mailer, pool: pool, log: &l}
}

func (uc *reminderUC) SendDue(ctx context.Context, now time.Time, leadDays int) (int, error) {
	target := model.DateOnly(now).AddDate(0, 0, leadDays)
	due, err := uc.subs.ListRenewingOn(ctx, target)
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	// Dedupe before fanning out so the pool only carries real sends.
	var todo []model.Subscription
	for i := range due {
		already, err := uc.sent.Exists(ctx, due[i].ID, due[i].NextRenewalDate)
		if err != nil {
			uc.log.Warn().Str("subscription_id", due[i].ID).Err(err).Msg("reminder log lookup failed, skipping")
			metrics.IncReminder("failed")
			continue
		}
		if already {
			metrics.IncReminder("deduped")
			continue
		}
		todo = append(todo, due[i])
	}

	// IDs are minted up front: the entropy source is not goroutine-safe.
	entropy := rand.New(rand.NewSource(now.UnixNano()))
	tasks := make([]worker.Task, len(todo))
	for i := range todo {
		sub := todo[i]
		id := ulid.MustNew(ulid.Timestamp(now), entropy).String()
		tasks[i] = func(ctx context.Context) error {
			msg := adapter.ReminderMessage{
				UserID:           sub.UserID,
				SubscriptionID:   sub.ID,
				SubscriptionName: sub.Name,
				Amount:           sub.Amount,
				Currency:         sub.Currency,
				DaysAhead:        leadDays,
			}
			if err := uc.mailer.SendRenewalReminder(ctx, msg); err != nil {
				return err
			}
			return uc.sent.Save(ctx, id, sub.ID, sub.UserID, sub.NextRenewalDate)
		}
	}

	sent := 0
	for i, err := range uc.pool.Run(ctx, tasks) {
		if err != nil {
			// One failed recipient must not abort the batch.
			uc.log.Error().Str("subscription_id", todo[i].ID).Err(err).Msg("reminder delivery failed")
			metrics.IncReminder("failed")
			continue
		}
		metrics.IncReminder("sent")
		sent++
	}
	return sent, nil
}
