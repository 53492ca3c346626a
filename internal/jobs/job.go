// Package jobs holds the normalized job listing model shared by the aggregation pipeline.
package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"
)

const (
	IDField      = "ID"
	CompanyField = "Company"
)

// Badge is the bucket a match score falls into.
type Badge string

const (
	BadgeHigh   Badge = "high"
	BadgeMedium Badge = "medium"
	BadgeLow    Badge = "low"
)

// Salary is the structured pay range reported by a provider.
type Salary struct {
	Min         *float64 `json:"min"`
	Max         *float64 `json:"max"`
	Currency    string   `json:"currency"`
	IsPredicted bool     `json:"isPredicted"`
}

// Job is a normalized listing. A Job produced by a source is never mutated;
// scoring works on clones.
type Job struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Salary      *Salary   `json:"salary,omitempty"`
	SalaryText  string    `json:"salaryText,omitempty"`
	PostedAt    time.Time `json:"postedDate"`
	ApplyURL    string    `json:"applyUrl"`
	Category    string    `json:"category,omitempty"`
	JobType     string    `json:"jobType"`
	WorkMode    string    `json:"workMode,omitempty"`
	Skills      []string  `json:"skills"`

	Match
}

// Match holds the fields computed per scoring pass. They are never cached.
type Match struct {
	Score         int      `json:"matchScore"`
	Badge         Badge    `json:"matchBadge"`
	Summary       string   `json:"matchSummary"`
	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills,omitempty"`
}

// Clone returns a deep copy so computed fields can be set without touching the original.
func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}

	c := *j
	c.Skills = slices.Clone(j.Skills)
	c.MatchedSkills = slices.Clone(j.MatchedSkills)
	c.MissingSkills = slices.Clone(j.MissingSkills)
	if j.Salary != nil {
		s := *j.Salary
		c.Salary = &s
	}

	return &c
}

// HasPostedDate reports whether the listing carries a usable posting timestamp.
func (j *Job) HasPostedDate() bool {
	return !j.PostedAt.IsZero()
}

func (j *Job) GetStringField(name string) string {
	switch name {
	case IDField:
		return j.ID
	case CompanyField:
		return j.Company
	default:
		return ""
	}
}

// Jobs is an ordered list of listings.
type Jobs struct {
	Items []*Job `json:"jobs"`
}

func (v *Jobs) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Items)
}

func (v *Jobs) FindByID(id string) *Job {
	for _, job := range v.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

// Clone deep-copies every listing.
func (v *Jobs) Clone() *Jobs {
	out := &Jobs{Items: make([]*Job, 0, v.Len())}
	if v == nil {
		return out
	}
	for _, job := range v.Items {
		out.Items = append(out.Items, job.Clone())
	}
	return out
}

// Exclude removes listings whose field equals one of targets, preserving order.
// It returns the removed ids.
func (v *Jobs) Exclude(name string, targets []string) []string {
	var excluded []string
	kept := v.Items[:0]
	for _, job := range v.Items {
		if slices.Contains(targets, job.GetStringField(name)) {
			excluded = append(excluded, job.ID)
			continue
		}
		kept = append(kept, job)
	}
	clear(v.Items[len(kept):])
	v.Items = kept
	return excluded
}

// Keep retains listings for which keep returns true, preserving order.
// It returns the removed ids.
func (v *Jobs) Keep(keep func(*Job) bool) []string {
	var removed []string
	kept := v.Items[:0]
	for _, job := range v.Items {
		if !keep(job) {
			removed = append(removed, job.ID)
			continue
		}
		kept = append(kept, job)
	}
	clear(v.Items[len(kept):])
	v.Items = kept
	return removed
}

// IDs returns the listing ids in order.
func (v *Jobs) IDs() []string {
	ids := make([]string, 0, v.Len())
	for _, job := range v.Items {
		ids = append(ids, job.ID)
	}
	return ids
}

func (v *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// LoadFromFile reads a list previously written by DumpToTmpFile.
func LoadFromFile(path string) (*Jobs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var list Jobs
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &list, nil
}

// ReportByCompany groups a short description of every listing by company.
func (v *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range v.Items {
		entry := map[string]string{
			"title":       job.Title,
			"url":         job.ApplyURL,
			"location":    job.Location,
			"salary":      job.SalaryString(),
			"match_score": fmt.Sprintf("%d", job.Score),
			"match_badge": string(job.Badge),
		}
		if job.Summary != "" {
			entry["match_summary"] = job.Summary
		}
		report[job.Company] = append(report[job.Company], entry)
	}
	return report
}

// SalaryString renders the structured salary, falling back to the free-text form.
func (j *Job) SalaryString() string {
	if j.Salary == nil || (j.Salary.Min == nil && j.Salary.Max == nil) {
		return j.SalaryText
	}

	var from, to float64
	if j.Salary.Min != nil {
		from = *j.Salary.Min
	}
	if j.Salary.Max != nil {
		to = *j.Salary.Max
	}

	s := fmt.Sprintf("%.0f-%.0f %s", from, to, j.Salary.Currency)
	if j.Salary.IsPredicted {
		s += " (predicted)"
	}
	return s
}
