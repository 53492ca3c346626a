// Package storage keeps per-user resumes and tracked applications.
package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spigell/job-radar/internal/resume"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidStatus = errors.New("invalid status")
)

// Status is the stage of a tracked application.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

// Statuses lists every accepted status in pipeline order.
var Statuses = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// ParseStatus converts a raw string to a Status. Empty input means Applied.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return StatusApplied, nil
	}
	st := Status(s)
	if slices.Contains(Statuses, st) {
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown application status %q", ErrInvalidStatus, s)
}

// Application is a job the user is tracking.
type Application struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	JobID       string    `json:"jobId"`
	JobTitle    string    `json:"jobTitle"`
	Company     string    `json:"company"`
	Status      Status    `json:"status"`
	AppliedDate time.Time `json:"appliedDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewApplication is the input for tracking a job.
type NewApplication struct {
	JobID       string     `json:"jobId" validate:"required"`
	JobTitle    string     `json:"jobTitle" validate:"required"`
	Company     string     `json:"company" validate:"required"`
	Status      string     `json:"status" validate:"omitempty,oneof=Applied Interview Offer Rejected"`
	AppliedDate *time.Time `json:"appliedDate"`
}

// Stats counts applications per status.
type Stats struct {
	Applied   int `json:"applied"`
	Interview int `json:"interview"`
	Offer     int `json:"offer"`
	Rejected  int `json:"rejected"`
}

// Store is the per-user persistence used by the job feed.
type Store interface {
	GetResume(ctx context.Context, userID string) (*resume.Resume, error)
	SetResume(ctx context.Context, userID string, r *resume.Resume) error

	GetApplications(ctx context.Context, userID string) ([]*Application, error)
	AddApplication(ctx context.Context, userID string, in NewApplication) (*Application, error)
	UpdateApplicationStatus(ctx context.Context, userID, appID string, status Status) (*Application, error)
	ClearApplications(ctx context.Context, userID string) error
}

// Summarize filters apps by status (empty keeps all), sorts them newest first
// and counts every app per status.
func Summarize(apps []*Application, status Status) ([]*Application, Stats) {
	var stats Stats
	out := make([]*Application, 0, len(apps))

	for _, app := range apps {
		switch app.Status {
		case StatusApplied:
			stats.Applied++
		case StatusInterview:
			stats.Interview++
		case StatusOffer:
			stats.Offer++
		case StatusRejected:
			stats.Rejected++
		}
		if status == "" || app.Status == status {
			out = append(out, app)
		}
	}

	slices.SortStableFunc(out, func(a, b *Application) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return out, stats
}

// JobIDs returns the job ids of apps.
func JobIDs(apps []*Application) []string {
	ids := make([]string, 0, len(apps))
	for _, app := range apps {
		ids = append(ids, app.JobID)
	}
	return ids
}
