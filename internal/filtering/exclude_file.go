package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/jobs"
)

type excludeFileFilter struct {
	toggle
	path string
}

// NewExcludeFile creates a filter that removes jobs listed in a dump file
// written by the search command.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, list *jobs.Jobs) (*jobs.Jobs, Step, error) {
	initial := list.Len()
	if f.path == "" {
		return unchanged(list)
	}

	excluded, err := jobs.LoadFromFile(f.path)
	if err != nil {
		// An unreadable exclude file never blocks the feed.
		if deps.Logger != nil {
			deps.Logger.Warn("skipping exclude file",
				zap.String("path", f.path),
				zap.Error(err),
			)
		}
		return unchanged(list)
	}

	removed := list.Exclude(jobs.IDField, excluded.IDs())
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding jobs based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_jobs", removed),
			zap.Int("jobs_left", list.Len()),
		)
	}

	return list, Step{Initial: initial, Dropped: len(removed), Left: list.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
