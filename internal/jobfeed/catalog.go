package jobfeed

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/job-radar/internal/adzuna"
	"github.com/spigell/job-radar/internal/jobs"
	"github.com/spigell/job-radar/internal/resume"
	"github.com/spigell/job-radar/internal/skills"
)

// ScoreJobsAgainstResume returns scored copies of list in input order.
func (s *Service) ScoreJobsAgainstResume(ctx context.Context, list []*jobs.Job, r *resume.Resume) []*jobs.Job {
	return s.scorer.ScoreJobs(ctx, list, r.Content())
}

// ExtractSkills returns the known skills found in text.
func (s *Service) ExtractSkills(text string) []string {
	return skills.Extract(text)
}

// Search queries the provider directly. Unlike RankedJobs it reports provider failures.
func (s *Service) Search(ctx context.Context, keyword, location string, page int) (*jobs.Jobs, error) {
	if keyword = strings.TrimSpace(keyword); keyword == "" {
		keyword = defaultKeyword
	}
	if page < 1 {
		page = 1
	}

	found, err := s.source.Search(ctx, adzuna.SearchParams{
		Keyword:        keyword,
		Location:       location,
		Page:           page,
		ResultsPerPage: defaultResultsPerPage,
	})
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	return found, nil
}

// Health reports the job provider state.
func (s *Service) Health(ctx context.Context) adzuna.Health {
	return s.source.HealthCheck(ctx)
}

// JobByID looks id up in the static listing set.
func (s *Service) JobByID(id string) (*jobs.Job, error) {
	job := jobs.Fallback().FindByID(id)
	if job == nil {
		return nil, fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return job, nil
}
