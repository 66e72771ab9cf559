package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nschafer/dugout/internal/providers"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PrewarmService refreshes the live leaderboard cache on a schedule so
// the first lookup after a TTL expiry does not pay the fetch latency.
type PrewarmService struct {
	live      *CachedLeaderboard
	season    func() int
	schedule  string
	logger    *logrus.Logger
	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

func NewPrewarmService(live *CachedLeaderboard, season func() int, schedule string, logger *logrus.Logger) *PrewarmService {
	return &PrewarmService{
		live:     live,
		season:   season,
		schedule: schedule,
		logger:   logger,
		cron:     cron.New(),
	}
}

func (s *PrewarmService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("prewarm service is already running")
	}

	if _, err := s.cron.AddFunc(s.schedule, s.warm); err != nil {
		return fmt.Errorf("failed to schedule prewarm: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	// Warm immediately so the first request after boot is served hot.
	go s.warm()

	s.logger.Info("Leaderboard prewarm service started")
	return nil
}

func (s *PrewarmService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	s.cron.Stop()
	s.isRunning = false
	s.logger.Info("Leaderboard prewarm service stopped")
}

func (s *PrewarmService) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	year := s.season()
	for _, category := range []providers.Category{providers.CategoryBatting, providers.CategoryPitching} {
		if _, err := s.live.Leaderboard(ctx, category, year); err != nil {
			s.logger.Warnf("Prewarm failed for %s %d: %v", category, year, err)
			continue
		}
		s.logger.Infof("Prewarmed %s leaderboard for %d", category, year)
	}
}
