package filtering

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/jobs"
)

type appliedHistoryFilter struct {
	toggle
	hide bool
}

// NewAppliedHistory creates a filter that removes jobs the user already tracks as applications.
// It only acts when Criteria.HideApplied is set.
func NewAppliedHistory() Filter {
	return &appliedHistoryFilter{}
}

func (f *appliedHistoryFilter) Name() string { return "applied_history" }

func (f *appliedHistoryFilter) Validate(cfg *Config) error {
	f.hide = cfg != nil && cfg.Criteria.HideApplied
	return nil
}

func (f *appliedHistoryFilter) Apply(_ context.Context, deps Deps, list *jobs.Jobs) (*jobs.Jobs, Step, error) {
	initial := list.Len()
	if !f.hide || len(deps.Applied) == 0 {
		return unchanged(list)
	}

	excluded := list.Exclude(jobs.IDField, deps.Applied)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding jobs based on tracked applications",
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", list.Len()),
		)
	}

	return list, Step{Initial: initial, Dropped: len(excluded), Left: list.Len()}, nil
}

func (f *appliedHistoryFilter) Status() Status {
	details := map[string]string{
		"hide_applied": strconv.FormatBool(f.hide),
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
