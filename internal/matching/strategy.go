package matching

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/ai"
	"github.com/spigell/job-radar/internal/jobs"
)

const (
	StrategyKeyword = "keyword"
	StrategyModel   = "model"

	defaultModelTimeout = 15 * time.Second
)

// Outcome is the tagged result of one strategy: a score, or a skip with a reason.
type Outcome struct {
	Strategy string
	Score    int
	Skipped  bool
	Reason   error
}

func scored(strategy string, score int) Outcome {
	return Outcome{Strategy: strategy, Score: score}
}

func skipped(strategy string, reason error) Outcome {
	return Outcome{Strategy: strategy, Skipped: true, Reason: reason}
}

// Strategy produces one opinion about a resume/job pair. It never fails; it skips.
type Strategy interface {
	Name() string
	Score(ctx context.Context, resume string, job *jobs.Job) Outcome
}

// Keyword is the deterministic skill-overlap strategy.
type Keyword struct{}

func (Keyword) Name() string { return StrategyKeyword }

func (Keyword) Score(_ context.Context, resume string, job *jobs.Job) Outcome {
	return scored(StrategyKeyword, KeywordScore(resume, job.Skills))
}

var (
	errNoRater     = errors.New("no reasoning provider configured")
	errShortResume = errors.New("resume text too short for a model opinion")
)

// Model asks a reasoning provider for a score, bounded by a timeout.
type Model struct {
	rater   ai.Rater
	timeout time.Duration
	logger  *zap.Logger
}

func NewModel(rater ai.Rater, timeout time.Duration, logger *zap.Logger) *Model {
	if timeout <= 0 {
		timeout = defaultModelTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{rater: rater, timeout: timeout, logger: logger}
}

func (m *Model) Name() string { return StrategyModel }

func (m *Model) Score(ctx context.Context, resume string, job *jobs.Job) Outcome {
	if m == nil || m.rater == nil {
		return skipped(StrategyModel, errNoRater)
	}
	if len([]rune(strings.TrimSpace(resume))) < MinResumeLength {
		return skipped(StrategyModel, errShortResume)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	rating, err := m.rater.Rate(ctx, resume, job)
	if err != nil {
		msg := "model score skipped"
		if errors.Is(err, ai.ErrScoreUnparseable) {
			msg = "model score unparseable"
		}
		m.logger.Warn(msg, zap.String("job_id", job.ID), zap.Error(err))
		return skipped(StrategyModel, err)
	}

	return scored(StrategyModel, clamp(rating.Score, 0, MaxScore))
}

// combine averages every successful outcome with equal weight.
// With no successful outcome the no-resume score is returned.
func combine(outcomes []Outcome) int {
	sum, n := 0, 0
	for _, o := range outcomes {
		if o.Skipped {
			continue
		}
		sum += o.Score
		n++
	}

	if n == 0 {
		return NoResumeScore
	}
	return int(math.Round(float64(sum) / float64(n)))
}
