package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/job-radar/internal/resume"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func (c *clock) tick() { c.now = c.now.Add(time.Minute) }

func newTestMemory() (*Memory, *clock) {
	c := &clock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	return NewMemory().WithClock(c.Now), c
}

func TestResumeReplace(t *testing.T) {
	m, _ := newTestMemory()
	ctx := context.Background()

	_, err := m.GetResume(ctx, "u1")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.SetResume(ctx, "u1", &resume.Resume{ID: "r1", Text: "Go"}))
	require.NoError(t, m.SetResume(ctx, "u1", &resume.Resume{ID: "r2", Text: "Rust"}))

	got, err := m.GetResume(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "r2", got.ID)

	_, err = m.GetResume(ctx, "u2")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, m.SetResume(ctx, "u1", nil))
}

func TestApplicationsLifecycle(t *testing.T) {
	m, c := newTestMemory()
	ctx := context.Background()

	first, err := m.AddApplication(ctx, "u1", NewApplication{JobID: "j1", JobTitle: "Go Dev", Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, StatusApplied, first.Status)
	assert.Equal(t, c.now, first.AppliedDate)
	assert.NotEmpty(t, first.ID)

	c.tick()
	applied := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	second, err := m.AddApplication(ctx, "u1", NewApplication{
		JobID: "j2", JobTitle: "SRE", Company: "Globex", Status: "Interview", AppliedDate: &applied,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusInterview, second.Status)
	assert.Equal(t, applied, second.AppliedDate)

	c.tick()
	updated, err := m.UpdateApplicationStatus(ctx, "u1", first.ID, StatusOffer)
	require.NoError(t, err)
	assert.Equal(t, StatusOffer, updated.Status)
	assert.Equal(t, c.now, updated.UpdatedAt)

	apps, err := m.GetApplications(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, apps, 2)

	listed, stats := Summarize(apps, "")
	assert.Equal(t, []string{"j2", "j1"}, JobIDs(listed), "newest first")
	assert.Equal(t, Stats{Interview: 1, Offer: 1}, stats)

	onlyOffers, _ := Summarize(apps, StatusOffer)
	assert.Equal(t, []string{"j1"}, JobIDs(onlyOffers))

	other, err := m.GetApplications(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, m.ClearApplications(ctx, "u1"))
	apps, err = m.GetApplications(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestApplicationErrors(t *testing.T) {
	m, _ := newTestMemory()
	ctx := context.Background()

	_, err := m.AddApplication(ctx, "u1", NewApplication{JobID: "j1", JobTitle: "Go", Company: "Acme", Status: "Hired"})
	require.ErrorIs(t, err, ErrInvalidStatus)

	app, err := m.AddApplication(ctx, "u1", NewApplication{JobID: "j1", JobTitle: "Go", Company: "Acme"})
	require.NoError(t, err)

	_, err = m.UpdateApplicationStatus(ctx, "u1", app.ID, Status("Ghosted"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = m.UpdateApplicationStatus(ctx, "u1", app.ID, "")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = m.UpdateApplicationStatus(ctx, "u1", "missing", StatusRejected)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.UpdateApplicationStatus(ctx, "u2", app.ID, StatusRejected)
	assert.ErrorIs(t, err, ErrNotFound, "applications are per user")
}

func TestReturnedApplicationsAreCopies(t *testing.T) {
	m, _ := newTestMemory()
	ctx := context.Background()

	app, err := m.AddApplication(ctx, "u1", NewApplication{JobID: "j1", JobTitle: "Go", Company: "Acme"})
	require.NoError(t, err)
	app.Status = StatusRejected

	apps, err := m.GetApplications(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, StatusApplied, apps[0].Status)
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusApplied, got)

	_, err = ParseStatus("applied")
	assert.ErrorIs(t, err, ErrInvalidStatus, "statuses are case-sensitive")
}
