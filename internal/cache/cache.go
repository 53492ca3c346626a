// Package cache memoizes aggregated job lists by query fingerprint.
package cache

import (
	"context"
	"time"

	"github.com/spigell/job-radar/internal/jobs"
)

// DefaultTTL is how long a fetched job list may be served.
const DefaultTTL = 6 * time.Hour

const (
	defaultRole     = "default"
	defaultLocation = "all"
)

// Cache stores job lists per fingerprint. Entries older than the TTL are never served.
type Cache interface {
	Get(ctx context.Context, fingerprint string) (*jobs.Jobs, bool)
	Put(ctx context.Context, fingerprint string, list *jobs.Jobs) error
}

// Fingerprint derives the cache key for a role and location as supplied, case-sensitive.
func Fingerprint(role, location string) string {
	if role == "" {
		role = defaultRole
	}
	if location == "" {
		location = defaultLocation
	}
	return "jobs_" + role + "_" + location
}

type entry struct {
	Jobs      *jobs.Jobs `json:"jobs"`
	FetchedAt time.Time  `json:"fetchedAt"`
}

func (e entry) fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) < ttl
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}
