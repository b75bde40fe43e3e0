package rates

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"subsentry/internal/currency"
	"subsentry/internal/domain/ports/adapter"
	red "subsentry/internal/infra/redis"
)

// CachedSource serves rate snapshots from the shared Redis cache, refreshing
// lazily from the wrapped source on the first stale access. Consumers still
// receive whatever snapshot is available; staleness is tolerated silently.
type CachedSource struct {
	next  adapter.RateSource
	cache *red.RateCache
	ttl   time.Duration
	now   func() time.Time
	log   *zerolog.Logger
}

var _ adapter.RateSource = (*CachedSource)(nil)

func NewCachedSource(next adapter.RateSource, cache *red.RateCache, ttl time.Duration, logger *zerolog.Logger) *CachedSource {
	l := logger.With().Str("component", "RateCache").Logger()
	return &CachedSource{next: next, cache: cache, ttl: ttl, now: time.Now, log: &l}
}

func (s *CachedSource) Latest(ctx context.Context) (currency.Snapshot, error) {
	if snap, err := s.cache.Get(ctx); err == nil {
		if !snap.Stale(s.now().UTC(), s.ttl) && snap.Source != currency.SourceFallback {
			return snap, nil
		}
	}

	snap, err := s.next.Latest(ctx)
	if err != nil {
		return currency.Snapshot{}, err
	}
	if err := s.cache.Store(ctx, snap); err != nil {
		// Cache write failures only cost the next caller a refetch.
		s.log.Warn().Err(err).Msg("failed to cache rate snapshot")
	}
	return snap, nil
}
