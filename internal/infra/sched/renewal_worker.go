package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"subsentry/internal/usecase"
)

// RenewalWorker periodically advances stale renewal dates via the use case.
type RenewalWorker struct {
	interval  time.Duration
	renewalUC usecase.RenewalUseCase
	log       *zerolog.Logger
}

func NewRenewalWorker(interval time.Duration, renewalUC usecase.RenewalUseCase, logger *zerolog.Logger) *RenewalWorker {
	l := logger.With().Str("component", "RenewalWorker").Logger()
	return &RenewalWorker{
		interval:  interval,
		renewalUC: renewalUC,
		log:       &l,
	}
}

func (w *RenewalWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting renewal worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping renewal worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.renewalUC.RefreshStale(ctx, time.Now())
			if err != nil {
				w.log.Error().Err(err).Msg("renewal worker error")
			}
			if n > 0 {
				w.log.Info().Int("count", n).Msg("stale renewal dates refreshed")
			}
		}
	}
}
