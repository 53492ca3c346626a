package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/job-radar/internal/resume"
)

// Memory is a process-local Store. Nothing survives a restart.
type Memory struct {
	mu           sync.RWMutex
	resumes      map[string]*resume.Resume
	applications map[string][]*Application
	now          func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		resumes:      make(map[string]*resume.Resume),
		applications: make(map[string][]*Application),
		now:          time.Now,
	}
}

// WithClock replaces the time source.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) GetResume(_ context.Context, userID string) (*resume.Resume, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.resumes[userID]
	if !ok {
		return nil, fmt.Errorf("resume for %s: %w", userID, ErrNotFound)
	}
	return r, nil
}

// SetResume replaces the user's resume.
func (m *Memory) SetResume(_ context.Context, userID string, r *resume.Resume) error {
	if r == nil {
		return fmt.Errorf("resume is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.resumes[userID] = r
	return nil
}

func (m *Memory) GetApplications(_ context.Context, userID string) ([]*Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	apps := m.applications[userID]
	out := make([]*Application, 0, len(apps))
	for _, app := range apps {
		c := *app
		out = append(out, &c)
	}
	return out, nil
}

func (m *Memory) AddApplication(_ context.Context, userID string, in NewApplication) (*Application, error) {
	status, err := ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	now := m.now()
	applied := now
	if in.AppliedDate != nil && !in.AppliedDate.IsZero() {
		applied = *in.AppliedDate
	}

	app := &Application{
		ID:          uuid.NewString(),
		UserID:      userID,
		JobID:       in.JobID,
		JobTitle:    in.JobTitle,
		Company:     in.Company,
		Status:      status,
		AppliedDate: applied,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	m.mu.Lock()
	m.applications[userID] = append(m.applications[userID], app)
	m.mu.Unlock()

	c := *app
	return &c, nil
}

func (m *Memory) UpdateApplicationStatus(_ context.Context, userID, appID string, status Status) (*Application, error) {
	if _, err := ParseStatus(string(status)); err != nil || status == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, app := range m.applications[userID] {
		if app.ID != appID {
			continue
		}
		app.Status = status
		app.UpdatedAt = m.now()
		c := *app
		return &c, nil
	}

	return nil, fmt.Errorf("application %s: %w", appID, ErrNotFound)
}

func (m *Memory) ClearApplications(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.applications, userID)
	return nil
}
