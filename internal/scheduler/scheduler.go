package scheduler

import (
	"context"
	"time"

	"github.com/stpnv0/EventRadar/internal/metrics"
	"github.com/wb-go/wbf/logger"
)

type cacheSweeper interface {
	Sweep() int
}

// Scheduler periodically evicts expired search cache entries, so memory is
// released even for fingerprints nobody asks for again.
type Scheduler struct {
	cache    cacheSweeper
	interval time.Duration
	metrics  *metrics.Metrics
	logger   logger.Logger
}

func New(
	cache cacheSweeper,
	interval time.Duration,
	m *metrics.Metrics,
	logger logger.Logger,
) *Scheduler {
	return &Scheduler{
		cache:    cache,
		interval: interval,
		metrics:  m,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("cache sweeper started",
		logger.Duration("interval", s.interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("cache sweeper stopped")
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Scheduler) tick() {
	removed := s.cache.Sweep()
	if removed == 0 {
		return
	}
	s.metrics.CacheSwept(removed)
	s.logger.Debug("expired cache entries evicted",
		logger.Int("removed", removed),
	)
}
