package scheduler

import (
	"github.com/flavr-travel/flavr-backend/internal/cache"
	"github.com/flavr-travel/flavr-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CacheRefreshScheduler periodically re-loads the central store so the
// dashboard picks up rows written outside the API, like newsletter signups
// from the public site.
type CacheRefreshScheduler struct {
	cron  *cron.Cron
	store *cache.Store
	spec  string
}

func NewCacheRefreshScheduler(store *cache.Store, spec string) *CacheRefreshScheduler {
	return &CacheRefreshScheduler{
		cron:  cron.New(),
		store: store,
		spec:  spec,
	}
}

func (s *CacheRefreshScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		logger.Debug("Starting scheduled cache refresh", nil)

		if err := s.store.Refresh(); err != nil {
			logger.Error("Scheduled cache refresh failed", err)
			return
		}

		logger.Debug("Scheduled cache refresh completed", nil)
	})

	if err != nil {
		logger.Error("Failed to add cron job for cache refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cache refresh scheduler started", map[string]interface{}{
		"spec": s.spec,
	})

	return nil
}

func (s *CacheRefreshScheduler) Stop() {
	logger.Info("Stopping cache refresh scheduler...", nil)
	s.cron.Stop()
	logger.Info("Cache refresh scheduler stopped", nil)
}
