package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"subsentry/internal/usecase"
)

type ReminderWorker struct {
	interval   time.Duration
	leadDays   int
	reminderUC usecase.ReminderUseCase
	log        *zerolog.Logger
}

func NewReminderWorker(interval time.Duration, leadDays int, reminderUC usecase.ReminderUseCase, logger *zerolog.Logger) *ReminderWorker {
	l := logger.With().Str("component", "ReminderWorker").Logger()
	return &ReminderWorker{
		interval:   interval,
		leadDays:   leadDays,
		reminderUC: reminderUC,
		log:        &l,
	}
}

func (w *ReminderWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting reminder worker")
	// Run once on startup, then on every tick
	w.runCheck(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping reminder worker")
			return ctx.Err()
		case <-ticker.C:
			w.runCheck(ctx)
		}
	}
}

func (w *ReminderWorker) runCheck(ctx context.Context) {
	sent, err := w.reminderUC.SendDue(ctx, time.Now(), w.leadDays)
	if err != nil {
		w.log.Error().Err(err).Msg("reminder check failed")
	}
	if sent > 0 {
		w.log.Info().Int("count", sent).Msg("renewal reminders sent")
	}
}
