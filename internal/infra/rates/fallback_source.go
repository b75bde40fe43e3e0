package rates

import (
	"context"

	"github.com/rs/zerolog"

	"subsentry/internal/currency"
	"subsentry/internal/domain/ports/adapter"
	"subsentry/internal/infra/metrics"
)

// FallbackSource wraps a live source and degrades to the static last-known
// table when it fails. The failure is logged for observability but never
// surfaced to the caller: aggregation availability wins over rate precision.
type FallbackSource struct {
	next adapter.RateSource
	log  *zerolog.Logger
}

var _ adapter.RateSource = (*FallbackSource)(nil)

func NewFallbackSource(next adapter.RateSource, logger *zerolog.Logger) *FallbackSource {
	l := logger.With().Str("component", "RateFallback").Logger()
	return &FallbackSource{next: next, log: &l}
}

func (s *FallbackSource) Latest(ctx context.Context) (currency.Snapshot, error) {
	snap, err := s.next.Latest(ctx)
	if err != nil {
		metrics.IncRateFetchFailures()
		metrics.SetRateFallbackActive(true)
		s.log.Warn().Err(err).Msg("live rate fetch failed, serving static fallback table")
		return currency.StaticFallback(), nil
	}
	metrics.SetRateFallbackActive(false)
	return snap, nil
}
