package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/jobs"
)

// Memory is a process-local Cache. Stale entries stay in the map until
// the next Put for the same fingerprint replaces them.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

func NewMemory(logger *zap.Logger, ttl time.Duration) *Memory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttlOrDefault(ttl),
		now:     time.Now,
		logger:  logger.With(zap.String("cache", "memory")),
	}
}

// WithClock replaces the time source. Used by tests and warm-up jobs.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) Get(_ context.Context, fingerprint string) (*jobs.Jobs, bool) {
	m.mu.RLock()
	e, ok := m.entries[fingerprint]
	m.mu.RUnlock()

	if !ok {
		m.logger.Debug("cache miss", zap.String("fingerprint", fingerprint))
		return nil, false
	}
	if !e.fresh(m.now(), m.ttl) {
		m.logger.Debug("cache entry expired", zap.String("fingerprint", fingerprint), zap.Time("fetched_at", e.FetchedAt))
		return nil, false
	}

	m.logger.Debug("cache hit", zap.String("fingerprint", fingerprint), zap.Int("count", e.Jobs.Len()))
	return e.Jobs, true
}

func (m *Memory) Put(_ context.Context, fingerprint string, list *jobs.Jobs) error {
	m.mu.Lock()
	m.entries[fingerprint] = entry{Jobs: list, FetchedAt: m.now()}
	m.mu.Unlock()

	return nil
}
