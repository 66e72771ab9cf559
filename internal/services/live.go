package services

import (
	"context"
	"time"

	"github.com/nschafer/dugout/internal/providers"
	"github.com/sirupsen/logrus"
)

// CachedLeaderboard fronts the leaderboard client with a shared cache
// so repeated lookups within the TTL never touch the remote site.
type CachedLeaderboard struct {
	client *providers.LeaderboardClient
	cache  *CacheService
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCachedLeaderboard(client *providers.LeaderboardClient, cache *CacheService, ttl time.Duration, logger *logrus.Logger) *CachedLeaderboard {
	return &CachedLeaderboard{
		client: client,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *CachedLeaderboard) Leaderboard(ctx context.Context, category providers.Category, year int) ([]providers.LiveRow, error) {
	key := LeaderboardCacheKey(string(category), year)

	if s.cache != nil {
		var rows []providers.LiveRow
		if err := s.cache.Get(ctx, key, &rows); err == nil {
			return rows, nil
		}
	}

	rows, err := s.client.Leaderboard(ctx, category, year)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetWithRetry(ctx, key, rows, s.ttl, 3); err != nil {
			s.logger.Warnf("Failed to cache %s leaderboard for %d: %v", category, year, err)
		}
	}

	return rows, nil
}
