// Package jobfeed assembles the ranked job feed: provider listings behind a
// cache, pre-score filters, resume scoring, the score bucket filter and ranking.
// It also fronts the per-user resume and application stores.
package jobfeed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/adzuna"
	"github.com/spigell/job-radar/internal/cache"
	"github.com/spigell/job-radar/internal/filtering"
	"github.com/spigell/job-radar/internal/jobs"
	"github.com/spigell/job-radar/internal/matching"
	"github.com/spigell/job-radar/internal/storage"
)

const (
	// DefaultUserID is used when a caller does not identify the user.
	DefaultUserID = "demo-user"

	defaultKeyword        = "software engineer"
	defaultResultsPerPage = 30
	defaultSortBy         = "date"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = storage.ErrNotFound
)

// Source is the job provider.
type Source interface {
	Search(ctx context.Context, params adzuna.SearchParams) (*jobs.Jobs, error)
	HealthCheck(ctx context.Context) adzuna.Health
}

// Ranked is the result of RankedJobs.
type Ranked struct {
	Jobs        []*jobs.Job `json:"jobs"`
	Total       int         `json:"total"`
	BestMatches []*jobs.Job `json:"bestMatches"`
}

type Service struct {
	source  Source
	cache   cache.Cache
	scorer  *matching.Scorer
	store   storage.Store
	filters filtering.Config
	logger  *zap.Logger
	now     func() time.Time
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// New creates the service. filters carries the operator level exclusions;
// its Criteria field is replaced per request.
func New(logger *zap.Logger, source Source, c cache.Cache, scorer *matching.Scorer, store storage.Store, filters filtering.Config) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:  source,
		cache:   c,
		scorer:  scorer,
		store:   store,
		filters: filters,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock replaces the time source used for uploads and date buckets.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RankedJobs returns the filtered jobs for userID sorted by descending match score.
// Provider and scoring failures never surface; only invalid criteria do.
func (s *Service) RankedJobs(ctx context.Context, userID string, criteria filtering.Criteria) (*Ranked, error) {
	if err := filtering.ValidateCriteria(criteria); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	userID = orDefaultUser(userID)

	cfg := s.filters
	cfg.Criteria = criteria
	deps := filtering.Deps{Logger: s.logger, Now: s.now}
	if criteria.HideApplied {
		deps.Applied = s.appliedJobIDs(ctx, userID)
	}

	pre, post := filtering.Steps(&cfg)

	list, err := filtering.Run(ctx, &cfg, deps, pre, s.candidates(ctx, criteria.Role, criteria.Location))
	if err != nil {
		return nil, err
	}

	scored := &jobs.Jobs{Items: s.scorer.ScoreJobs(ctx, list.Items, s.resumeText(ctx, userID))}

	scored, err = filtering.Run(ctx, &cfg, deps, post, scored)
	if err != nil {
		return nil, err
	}

	if ce := s.logger.Check(zap.DebugLevel, "filters"); ce != nil {
		ce.Write(zap.Any("steps", filtering.Describe(append(pre, post...))))
	}

	ranked := filtering.Rank(scored)
	s.logger.Info("ranked jobs",
		zap.String("user_id", userID),
		zap.String("role", criteria.Role),
		zap.String("location", criteria.Location),
		zap.Int("total", ranked.Len()),
	)

	return &Ranked{
		Jobs:        ranked.Items,
		Total:       ranked.Len(),
		BestMatches: filtering.BestMatches(ranked, filtering.BestMatchesLimit),
	}, nil
}

// candidates returns a private copy of the listings for (role, location).
// A provider failure is replaced by the static fallback set, which is not cached.
func (s *Service) candidates(ctx context.Context, role, location string) *jobs.Jobs {
	fingerprint := cache.Fingerprint(role, location)
	if cached, ok := s.cache.Get(ctx, fingerprint); ok {
		s.logger.Debug("using cached jobs", zap.String("fingerprint", fingerprint), zap.Int("count", cached.Len()))
		return cached.Clone()
	}

	found, err := s.fetch(ctx, role, location)
	if err != nil {
		s.logger.Warn("job provider failed, serving fallback jobs",
			zap.String("fingerprint", fingerprint),
			zap.Bool("provider_unavailable", adzuna.IsUnavailable(err)),
			zap.Error(err),
		)
		return jobs.Fallback()
	}

	return found.Clone()
}

// Refresh fetches (role, location) from the provider and replaces the cache entry.
func (s *Service) Refresh(ctx context.Context, role, location string) (int, error) {
	found, err := s.fetch(ctx, role, location)
	if err != nil {
		return 0, err
	}
	return found.Len(), nil
}

func (s *Service) fetch(ctx context.Context, role, location string) (*jobs.Jobs, error) {
	keyword := strings.TrimSpace(role)
	if keyword == "" {
		keyword = defaultKeyword
	}

	found, err := s.source.Search(ctx, adzuna.SearchParams{
		Keyword:        keyword,
		Location:       location,
		ResultsPerPage: defaultResultsPerPage,
		SortBy:         defaultSortBy,
	})
	if err != nil {
		return nil, err
	}

	fingerprint := cache.Fingerprint(role, location)
	if err := s.cache.Put(ctx, fingerprint, found); err != nil {
		s.logger.Warn("failed to cache jobs", zap.String("fingerprint", fingerprint), zap.Error(err))
	}
	s.logger.Debug("fetched jobs", zap.String("fingerprint", fingerprint), zap.Int("count", found.Len()))

	return found, nil
}

func (s *Service) resumeText(ctx context.Context, userID string) string {
	r, err := s.store.GetResume(ctx, userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("failed to load resume, scoring without it", zap.String("user_id", userID), zap.Error(err))
		}
		return ""
	}
	return r.Content()
}

func (s *Service) appliedJobIDs(ctx context.Context, userID string) []string {
	apps, err := s.store.GetApplications(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load applications", zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	return storage.JobIDs(apps)
}

func orDefaultUser(userID string) string {
	if userID = strings.TrimSpace(userID); userID == "" {
		return DefaultUserID
	}
	return userID
}
