// Package filtering narrows and ranks job lists.
//
// Filters run in sequence over a jobs.Jobs list. The pre-score set runs on
// raw listings so scoring is only spent on jobs that can be shown; the
// match-score bucket filter runs after scoring.
package filtering

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/jobs"
)

// Filter represents a single filtering step applied to jobs.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, list *jobs.Jobs) (*jobs.Jobs, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
	// Now is the reference time for date buckets. Defaults to time.Now.
	Now func() time.Time
	// Applied holds ids of jobs the user already tracks.
	Applied []string
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

const (
	DateAny   = "any"
	Date24h   = "24h"
	DateWeek  = "week"
	DateMonth = "month"
)

// Criteria are the user supplied filters. Empty fields do not filter.
type Criteria struct {
	Role        string   `form:"role" json:"role"`
	Skills      []string `form:"skills" json:"skills"`
	Location    string   `form:"location" json:"location"`
	JobType     string   `form:"jobType" json:"jobType"`
	WorkMode    string   `form:"workMode" json:"workMode"`
	DatePosted  string   `form:"datePosted" json:"datePosted" validate:"omitempty,oneof=24h week month any"`
	MatchScore  string   `form:"matchScore" json:"matchScore" validate:"omitempty,oneof=high medium low"`
	HideApplied bool     `form:"hideApplied" json:"hideApplied"`
}

// Config contains settings consumed by the filters.
type Config struct {
	Criteria         Criteria
	ExcludeCompanies []string `mapstructure:"exclude-companies"`
	ExcludeFile      string   `mapstructure:"exclude-file"`
	// Disabled names filters that are skipped for every request.
	Disabled         []string `mapstructure:"disabled"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateCriteria rejects unknown bucket names.
func ValidateCriteria(c Criteria) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid filters: %w", err)
	}
	return nil
}

// ParseSkills splits a comma separated skill list, dropping blanks.
func ParseSkills(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates every enabled filter and then applies them in order.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, list *jobs.Jobs) (*jobs.Jobs, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !step.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Debug("filter disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(ctx, deps, list)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil && info.Dropped > 0 {
			deps.Logger.Debug("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		list = next
	}

	return list, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// PreScore returns fresh instances of the filters that do not need scores.
func PreScore() []Filter {
	return []Filter{
		NewExcludeCompanies(),
		NewExcludeFile(),
		NewAppliedHistory(),
		NewRole(),
		NewSkills(),
		NewLocation(),
		NewJobType(),
		NewWorkMode(),
		NewDatePosted(),
	}
}

// Steps returns fresh pre- and post-score filters with cfg.Disabled switched off.
func Steps(cfg *Config) (pre, post []Filter) {
	pre, post = PreScore(), PostScore()
	if cfg == nil {
		return pre, post
	}
	for _, name := range cfg.Disabled {
		DisableByName(pre, name, "disabled in configuration")
		DisableByName(post, name, "disabled in configuration")
	}
	return pre, post
}

// PostScore returns fresh instances of the filters that read match scores.
func PostScore() []Filter {
	return []Filter{NewMatchScore()}
}

// toggle implements Disable/IsEnabled for filters.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func apply(deps Deps, name string, list *jobs.Jobs, keep func(*jobs.Job) bool) (*jobs.Jobs, Step, error) {
	initial := list.Len()
	removed := list.Keep(keep)
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Debug("excluding jobs",
			zap.String("filter", name),
			zap.Strings("excluded_jobs", removed),
			zap.Int("jobs_left", list.Len()),
		)
	}
	return list, Step{Initial: initial, Dropped: len(removed), Left: list.Len()}, nil
}

func unchanged(list *jobs.Jobs) (*jobs.Jobs, Step, error) {
	return list, Step{Initial: list.Len(), Left: list.Len()}, nil
}
