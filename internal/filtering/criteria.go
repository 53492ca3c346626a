package filtering

import (
	"context"
	"strings"
	"time"

	"github.com/spigell/job-radar/internal/jobs"
	"github.com/spigell/job-radar/internal/matching"
)

type roleFilter struct {
	toggle
	role string
}

// NewRole keeps jobs whose title contains the role, ignoring case.
func NewRole() Filter { return &roleFilter{} }

func (f *roleFilter) Name() string { return "role" }

func (f *roleFilter) Validate(cfg *Config) error {
	f.role = ""
	if cfg != nil {
		f.role = strings.ToLower(strings.TrimSpace(cfg.Criteria.Role))
	}
	return nil
}

func (f *roleFilter) Apply(_ context.Context, deps Deps, list *jobs.Jobs) (*jobs.Jobs, Step, error) {
	if f.role == "" {
		return unchanged(list)
	}
	return apply(deps, f.Name(), list, func(j *jobs.Job) bool {
		return strings.Contains(strings.ToLower(j.Title), f.role)
	})
}

type skillsFilter struct {
	toggle
	skills []string
}

// NewSkills keeps jobs with at least one skill containing any requested skill, ignoring case.
// Both extracted and matched skills are considered.
func NewSkills() Filter { return &skillsFilter{} }

func (f *skillsFilter) Name() string { return "skills" }

func (f *skillsFilter) Validate(cfg *Config) error {
	f.skills = nil
	if cfg == nil {
		return nil
	}
	for _, s := range cfg.Criteria.Skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			f.skills = append(f.skills, s)
		}
	}
	return nil
}

func (f *skillsFilter) Apply(_ context.Context, deps Deps, list *jobs.Jobs) (*jobs.Jobs, Step, error) {
	if len(f.skills) == 0 {
		return unchanged(list)
	}
	return apply(deps, f.Name(), list, func(j *jobs.Job) bool {
		return anySkill(j.Skills, f.skills) || anySkill(j.MatchedSkills, f.skills)
	})
}

func anySkill(jobSkills, wanted []string) bool {
	for _, js := range jobSkills {
		lower := strings.ToLower(js)
		for _, w := range wanted {
			if strings.Contains(lower, w) {
				return true
			}
		}
	}
	return false
}

type locationFilter struct {
	toggle
	location string
}

// NewLocation keeps jobs whose location contains the requested one, ignoring case.
func NewLocation() Filter { return &locationFilter{} }

func (f *locationFilter) Name() string { return "location" }

func (f *locationFilter) Validate(cfg *Config) error {
	f.location = ""
	if cfg != nil {
		f.location = strings.ToLower(strings.TrimSpace(cfg.Criteria.Location))
	}
	return nil
}

func (f *locationFilter) Apply(_ context.Context, deps Deps, list *jobs.Jobs) (*jobs.Jobs, Step, error) {
	if f.location == "" {
		return unchanged(list)
	}
	return apply(deps, f.Name(), list, func(j *jobs.Job) bool {
		return j.Location != "" && strings.Contains(strings.ToLower(j.Location), f.location)
	})
}

// exactFilter keeps jobs whose field equals the requested value, ignoring case.
type exactFilter struct {
	toggle
	name  string
	want  func(*Criteria) string
	field func(*jobs.Job) string
	value string
}

func NewJobType() Filter {
	return &exactFilter{
		name:  "job_type",
		want:  func(c *Criteria) string { return c.JobType },
		field: func(j *jobs.Job) string { return j.JobType },
	}
}

func NewWorkMode() Filter {
	return &exactFilter{
		name:  "work_mode",
		want:  func(c *Criteria) string { return c.WorkMode },
		field: func(j *jobs.Job) string { return j.WorkMode },
	}
}

func (f *exactFilter) Name() string { return f.name }

func (f *exactFilter) Validate(cfg *Config) error {
	f.value = ""
	if cfg != nil {
		f.value = strings.TrimSpace(f.want(&cfg.Criteria))
	}
	return nil
}

func (f *exactFilter) Apply(_ context.Context, deps Deps, list *jobs.Jobs) (*jobs.Jobs, Step, error) {
	if f.value == "" {
		return unchanged(list)
	}
	return apply(deps, f.Name(), list, func(j *jobs.Job) bool {
		return strings.EqualFold(f.field(j), f.value)
	})
}

type datePostedFilter struct {
	toggle
	bucket string
}

// NewDatePosted keeps jobs posted within the requested window. Jobs without
// a usable posting date are dropped by every bucket except "any".
func NewDatePosted() Filter { return &datePostedFilter{} }

func (f *datePostedFilter) Name() string { return "date_posted" }

func (f *datePostedFilter) Validate(cfg *Config) error {
	f.bucket = ""
	if cfg == nil {
		return nil
	}
	if err := validate.Var(cfg.Criteria.DatePosted, "omitempty,oneof=24h week month any"); err != nil {
		return err
	}
	f.bucket = cfg.Criteria.DatePosted
	return nil
}

func (f *datePostedFilter) Apply(_ context.Context, deps Deps, list *jobs.Jobs) (*jobs.Jobs, Step, error) {
	if f.bucket == "" || f.bucket == DateAny {
		return unchanged(list)
	}

	cutoff := Cutoff(f.bucket, deps.now())
	return apply(deps, f.Name(), list, func(j *jobs.Job) bool {
		return j.HasPostedDate() && !j.PostedAt.Before(cutoff)
	})
}

// Cutoff returns the oldest posting time accepted by a date bucket.
// Unknown buckets return the zero time.
func Cutoff(bucket string, now time.Time) time.Time {
	switch bucket {
	case Date24h:
		return now.Add(-24 * time.Hour)
	case DateWeek:
		return now.AddDate(0, 0, -7)
	case DateMonth:
		return now.AddDate(0, -1, 0)
	default:
		return time.Time{}
	}
}

type matchScoreFilter struct {
	toggle
	bucket jobs.Badge
}

// NewMatchScore keeps jobs whose score falls into the requested badge bucket.
func NewMatchScore() Filter { return &matchScoreFilter{} }

func (f *matchScoreFilter) Name() string { return "match_score" }

func (f *matchScoreFilter) Validate(cfg *Config) error {
	f.bucket = ""
	if cfg == nil {
		return nil
	}
	if err := validate.Var(cfg.Criteria.MatchScore, "omitempty,oneof=high medium low"); err != nil {
		return err
	}
	f.bucket = jobs.Badge(cfg.Criteria.MatchScore)
	return nil
}

func (f *matchScoreFilter) Apply(_ context.Context, deps Deps, list *jobs.Jobs) (*jobs.Jobs, Step, error) {
	if f.bucket == "" {
		return unchanged(list)
	}
	return apply(deps, f.Name(), list, func(j *jobs.Job) bool {
		return matching.InBucket(j.Score, f.bucket)
	})
}
