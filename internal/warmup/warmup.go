// Package warmup refreshes the job cache for configured queries on a cron schedule.
package warmup

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Query is a (role, location) pair to keep warm. Empty fields use the feed defaults.
type Query struct {
	Role     string `mapstructure:"role"`
	Location string `mapstructure:"location"`
}

// Refresher fetches listings for a query and stores them in the cache.
type Refresher interface {
	Refresh(ctx context.Context, role, location string) (int, error)
}

// Scheduler wraps robfig/cron and runs a refresh cycle on every tick.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	queries   []Query
	spec      string
	logger    *zap.Logger
}

// New creates a Scheduler for spec, e.g. "@every 6h" or "0 */6 * * *".
func New(refresher Refresher, spec string, queries []Query, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(queries) == 0 {
		queries = []Query{{}}
	}
	return &Scheduler{
		cron:      cron.New(),
		refresher: refresher,
		queries:   queries,
		spec:      spec,
		logger:    logger.With(zap.String("component", "warmup")),
	}
}

// Start registers the job, starts the scheduler and runs one cycle right away.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.logger.Info("warm-up scheduled", zap.String("spec", s.spec), zap.Int("queries", len(s.queries)))

	go s.RunOnce(ctx)

	return nil
}

// Stop stops the scheduler and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("warm-up stopped")
}

// RunOnce refreshes every query. Failures are logged and do not stop the cycle.
// It returns the number of queries refreshed successfully.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	refreshed := 0
	for _, q := range s.queries {
		if ctx.Err() != nil {
			break
		}

		count, err := s.refresher.Refresh(ctx, q.Role, q.Location)
		if err != nil {
			s.logger.Warn("warm-up refresh failed",
				zap.String("role", q.Role),
				zap.String("location", q.Location),
				zap.Error(err),
			)
			continue
		}

		refreshed++
		s.logger.Debug("warm-up refreshed",
			zap.String("role", q.Role),
			zap.String("location", q.Location),
			zap.Int("count", count),
		)
	}

	s.logger.Info("warm-up cycle complete", zap.Int("refreshed", refreshed), zap.Int("queries", len(s.queries)))
	return refreshed
}
