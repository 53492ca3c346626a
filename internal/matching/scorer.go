package matching

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/job-radar/internal/ai"
	"github.com/spigell/job-radar/internal/jobs"
)

const (
	defaultConcurrency = 8

	summarySeparator = " • "
	noResumeSummary  = "Upload a resume to see how well you match this role."
	genericSummary   = "General alignment based on resume keywords."
)

// Scorer runs the strategies for a job and derives the match insight.
// It never returns an error; failures degrade to the keyword score.
type Scorer struct {
	strategies  []Strategy
	concurrency int
	logger      *zap.Logger
}

type Option func(*Scorer)

// WithRater appends the model strategy backed by rater.
func WithRater(rater ai.Rater, timeout time.Duration) Option {
	return func(s *Scorer) {
		if rater == nil {
			return
		}
		s.strategies = append(s.strategies, NewModel(rater, timeout, s.logger))
	}
}

// WithConcurrency bounds how many jobs are scored at once.
func WithConcurrency(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewScorer(logger *zap.Logger, opts ...Option) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Scorer{
		strategies:  []Strategy{Keyword{}},
		concurrency: defaultConcurrency,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Strategies returns the strategy names in evaluation order.
func (s *Scorer) Strategies() []string {
	names := make([]string, len(s.strategies))
	for i, st := range s.strategies {
		names[i] = st.Name()
	}
	return names
}

// Score returns the combined score of resume against job.
func (s *Scorer) Score(ctx context.Context, resume string, job *jobs.Job) int {
	if job == nil {
		return NoResumeScore
	}
	if strings.TrimSpace(resume) == "" {
		return NoResumeScore
	}

	outcomes := make([]Outcome, 0, len(s.strategies))
	for _, st := range s.strategies {
		outcomes = append(outcomes, st.Score(ctx, resume, job))
	}

	return combine(outcomes)
}

// Insights scores job and explains the result.
func (s *Scorer) Insights(ctx context.Context, resume string, job *jobs.Job) jobs.Match {
	if job == nil || strings.TrimSpace(resume) == "" {
		return noResumeMatch()
	}

	score := s.Score(ctx, resume, job)
	matched, missing := SplitSkills(resume, job.Skills)

	return jobs.Match{
		Score:         score,
		Badge:         Badge(score),
		Summary:       Summary(matched, job.JobType, job.WorkMode),
		MatchedSkills: matched,
		MissingSkills: missing,
	}
}

// ScoreJobs scores clones of list against resume in parallel and returns them
// in input order. The originals are left untouched. A slow or failing provider
// only affects the job it was asked about.
func (s *Scorer) ScoreJobs(ctx context.Context, list []*jobs.Job, resume string) []*jobs.Job {
	out := make([]*jobs.Job, len(list))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, job := range list {
		if job == nil {
			continue
		}
		clone := job.Clone()
		out[i] = clone
		g.Go(func() error {
			clone.Match = s.Insights(gctx, resume, clone)
			return nil
		})
	}

	// Workers never return errors.
	_ = g.Wait()

	result := out[:0]
	for _, job := range out {
		if job != nil {
			result = append(result, job)
		}
	}

	s.logger.Debug("scored jobs", zap.Int("count", len(result)), zap.Strings("strategies", s.Strategies()))

	return result
}

// SplitSkills partitions job skills by case-insensitive containment in resume text.
func SplitSkills(resume string, jobSkills []string) (matched, missing []string) {
	matched = make([]string, 0, len(jobSkills))
	missing = make([]string, 0, len(jobSkills))

	lowerResume := strings.ToLower(resume)
	for _, skill := range jobSkills {
		if strings.TrimSpace(skill) == "" {
			continue
		}
		if strings.Contains(lowerResume, strings.ToLower(skill)) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	return matched, missing
}

// Summary joins the non-empty insight parts, or returns a generic line.
func Summary(matched []string, jobType, workMode string) string {
	parts := make([]string, 0, 3)
	if len(matched) > 0 {
		parts = append(parts, "Matched skills: "+strings.Join(matched, ", "))
	}
	if jobType = strings.TrimSpace(jobType); jobType != "" {
		parts = append(parts, "Role fit: "+jobType)
	}
	if workMode = strings.TrimSpace(workMode); workMode != "" {
		parts = append(parts, "Work mode: "+workMode)
	}

	if len(parts) == 0 {
		return genericSummary
	}
	return strings.Join(parts, summarySeparator)
}

func noResumeMatch() jobs.Match {
	return jobs.Match{
		Score:         NoResumeScore,
		Badge:         Badge(NoResumeScore),
		Summary:       noResumeSummary,
		MatchedSkills: []string{},
		MissingSkills: []string{},
	}
}
