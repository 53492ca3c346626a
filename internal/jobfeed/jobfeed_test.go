package jobfeed

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/adzuna"
	"github.com/spigell/job-radar/internal/cache"
	"github.com/spigell/job-radar/internal/filtering"
	"github.com/spigell/job-radar/internal/jobs"
	"github.com/spigell/job-radar/internal/matching"
	"github.com/spigell/job-radar/internal/storage"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type stubSource struct {
	mu     sync.Mutex
	list   *jobs.Jobs
	err    error
	calls  []adzuna.SearchParams
	health adzuna.Health
}

func (s *stubSource) Search(_ context.Context, params adzuna.SearchParams) (*jobs.Jobs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, params)
	if s.err != nil {
		return nil, s.err
	}
	return s.list.Clone(), nil
}

func (s *stubSource) HealthCheck(context.Context) adzuna.Health {
	return s.health
}

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func listing(id, title string, posted time.Time, skills ...string) *jobs.Job {
	return &jobs.Job{
		ID:       id,
		Source:   adzuna.Provider,
		Title:    title,
		Company:  "Company " + id,
		Location: "Berlin",
		JobType:  "permanent",
		PostedAt: posted,
		Skills:   skills,
	}
}

func newTestService(source Source) (*Service, *storage.Memory) {
	now := func() time.Time { return fixedNow }
	store := storage.NewMemory().WithClock(now)
	c := cache.NewMemory(zap.NewNop(), cache.DefaultTTL).WithClock(now)
	svc := New(zap.NewNop(), source, c, matching.NewScorer(zap.NewNop()), store, filtering.Config{}).WithClock(now)
	return svc, store
}

func TestRankedJobsFallsBackWhenProviderFails(t *testing.T) {
	source := &stubSource{err: fmt.Errorf("%w: connection refused", adzuna.ErrProviderUnavailable)}
	svc, _ := newTestService(source)

	got, err := svc.RankedJobs(context.Background(), "", filtering.Criteria{})
	require.NoError(t, err)
	require.NotEmpty(t, got.Jobs)
	assert.Equal(t, jobs.Fallback().Len(), got.Total)
	assert.Len(t, got.BestMatches, filtering.BestMatchesLimit)

	for _, job := range got.Jobs {
		assert.Equal(t, jobs.SourceFallback, job.Source)
		assert.Equal(t, matching.NoResumeScore, job.Score)
		assert.Equal(t, jobs.BadgeLow, job.Badge)
	}

	_, err = svc.RankedJobs(context.Background(), "", filtering.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, 2, source.callCount(), "fallback listings are not cached")
	assert.Equal(t, "software engineer", source.calls[0].Keyword)
	assert.Equal(t, 30, source.calls[0].ResultsPerPage)
	assert.Equal(t, "date", source.calls[0].SortBy)
}

func TestRankedJobsSkipsUnreadableExcludeFile(t *testing.T) {
	source := &stubSource{err: fmt.Errorf("%w: connection refused", adzuna.ErrProviderUnavailable)}
	now := func() time.Time { return fixedNow }
	c := cache.NewMemory(zap.NewNop(), cache.DefaultTTL).WithClock(now)
	cfg := filtering.Config{ExcludeFile: filepath.Join(t.TempDir(), "missing.json")}
	svc := New(zap.NewNop(), source, c, matching.NewScorer(zap.NewNop()), storage.NewMemory(), cfg).WithClock(now)

	got, err := svc.RankedJobs(context.Background(), "", filtering.Criteria{})
	require.NoError(t, err)
	require.NotEmpty(t, got.Jobs)
	assert.Equal(t, jobs.Fallback().Len(), got.Total)
}

func TestRankedJobsUsesCache(t *testing.T) {
	source := &stubSource{list: &jobs.Jobs{Items: []*jobs.Job{
		listing("a", "Go Developer", fixedNow, "Go"),
		listing("b", "Go Engineer", fixedNow, "Go", "Docker"),
	}}}
	svc, _ := newTestService(source)
	ctx := context.Background()

	first, err := svc.RankedJobs(ctx, "u1", filtering.Criteria{Role: "Go"})
	require.NoError(t, err)
	require.Equal(t, 2, first.Total)
	first.Jobs[0].Title = "changed"

	second, err := svc.RankedJobs(ctx, "u1", filtering.Criteria{Role: "Go"})
	require.NoError(t, err)
	assert.Equal(t, 1, source.callCount())
	assert.Equal(t, "Go", source.calls[0].Keyword)
	for _, job := range second.Jobs {
		assert.NotEqual(t, "changed", job.Title)
	}

	_, err = svc.RankedJobs(ctx, "u1", filtering.Criteria{Role: "Go", Location: "Berlin"})
	require.NoError(t, err)
	assert.Equal(t, 2, source.callCount(), "location is part of the fingerprint")
}

func TestRankedJobsScoresAndRanks(t *testing.T) {
	source := &stubSource{list: &jobs.Jobs{Items: []*jobs.Job{
		listing("python", "Python Developer", fixedNow, "Python"),
		listing("fullstack", "Fullstack Developer", fixedNow, "React", "Python", "AWS"),
		listing("frontend", "Frontend Developer", fixedNow, "React"),
	}}}
	svc, _ := newTestService(source)
	ctx := context.Background()

	_, err := svc.SetResumeText(ctx, "u1", "Experienced React and Node.js developer with AWS skills")
	require.NoError(t, err)

	got, err := svc.RankedJobs(ctx, "u1", filtering.Criteria{})
	require.NoError(t, err)
	require.Equal(t, 3, got.Total)

	assert.Equal(t, []string{"frontend", "fullstack", "python"}, (&jobs.Jobs{Items: got.Jobs}).IDs())
	assert.Equal(t, []int{100, 67, 25}, []int{got.Jobs[0].Score, got.Jobs[1].Score, got.Jobs[2].Score})
	assert.Equal(t, []string{"React", "AWS"}, got.Jobs[1].MatchedSkills)
	assert.Equal(t, []string{"Python"}, got.Jobs[1].MissingSkills)

	medium, err := svc.RankedJobs(ctx, "u1", filtering.Criteria{MatchScore: "medium"})
	require.NoError(t, err)
	require.Equal(t, 1, medium.Total)
	assert.Equal(t, "fullstack", medium.Jobs[0].ID)
	assert.Equal(t, jobs.BadgeMedium, medium.Jobs[0].Badge)

	// Scores are computed per request and never leak into the cache.
	other, err := svc.RankedJobs(ctx, "u2", filtering.Criteria{})
	require.NoError(t, err)
	for _, job := range other.Jobs {
		assert.Equal(t, matching.NoResumeScore, job.Score)
	}
}

func TestRankedJobsDatePosted(t *testing.T) {
	source := &stubSource{list: &jobs.Jobs{Items: []*jobs.Job{
		listing("old", "Go Developer", fixedNow.Add(-72*time.Hour)),
		listing("fresh", "Go Developer", fixedNow.Add(-2*time.Hour)),
		listing("undated", "Go Developer", time.Time{}),
	}}}
	svc, _ := newTestService(source)

	got, err := svc.RankedJobs(context.Background(), "", filtering.Criteria{DatePosted: filtering.Date24h})
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, (&jobs.Jobs{Items: got.Jobs}).IDs())

	got, err = svc.RankedJobs(context.Background(), "", filtering.Criteria{DatePosted: filtering.DateAny})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Total)
}

func TestRankedJobsHideApplied(t *testing.T) {
	source := &stubSource{list: &jobs.Jobs{Items: []*jobs.Job{
		listing("a", "Go Developer", fixedNow),
		listing("b", "Go Developer", fixedNow),
	}}}
	svc, _ := newTestService(source)
	ctx := context.Background()

	_, err := svc.TrackApplication(ctx, "u1", storage.NewApplication{JobID: "a", JobTitle: "Go Developer", Company: "Company a"})
	require.NoError(t, err)

	got, err := svc.RankedJobs(ctx, "u1", filtering.Criteria{HideApplied: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, (&jobs.Jobs{Items: got.Jobs}).IDs())

	got, err = svc.RankedJobs(ctx, "u1", filtering.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Total)
}

func TestRankedJobsRejectsInvalidCriteria(t *testing.T) {
	source := &stubSource{list: &jobs.Jobs{}}
	svc, _ := newTestService(source)

	_, err := svc.RankedJobs(context.Background(), "", filtering.Criteria{DatePosted: "yesterday"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RankedJobs(context.Background(), "", filtering.Criteria{MatchScore: "great"})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, source.callCount())
}

func TestRefreshReplacesCacheEntry(t *testing.T) {
	source := &stubSource{list: &jobs.Jobs{Items: []*jobs.Job{listing("a", "Go Developer", fixedNow)}}}
	svc, _ := newTestService(source)
	ctx := context.Background()

	n, err := svc.Refresh(ctx, "Go", "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	source.list = &jobs.Jobs{Items: []*jobs.Job{listing("a", "Go Developer", fixedNow), listing("b", "Go Developer", fixedNow)}}
	_, err = svc.Refresh(ctx, "Go", "")
	require.NoError(t, err)

	got, err := svc.RankedJobs(ctx, "", filtering.Criteria{Role: "Go"})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 2, source.callCount())

	source.err = adzuna.ErrProviderUnavailable
	_, err = svc.Refresh(ctx, "Go", "")
	assert.ErrorIs(t, err, adzuna.ErrProviderUnavailable)
}

func TestSearchReportsProviderFailure(t *testing.T) {
	source := &stubSource{err: adzuna.ErrProviderUnavailable}
	svc, _ := newTestService(source)

	_, err := svc.Search(context.Background(), " ", "London", 0)
	require.ErrorIs(t, err, adzuna.ErrProviderUnavailable)
	require.Len(t, source.calls, 1)
	assert.Equal(t, "software engineer", source.calls[0].Keyword)
	assert.Equal(t, 1, source.calls[0].Page)
	assert.Equal(t, "London", source.calls[0].Location)

	source.err = nil
	source.list = &jobs.Jobs{Items: []*jobs.Job{listing("a", "Go Developer", fixedNow)}}
	found, err := svc.Search(context.Background(), "golang", "", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Len())
	assert.Equal(t, 3, source.calls[1].Page)
}

func TestHealth(t *testing.T) {
	source := &stubSource{health: adzuna.Health{Status: adzuna.StatusUnhealthy, Error: "boom"}}
	svc, _ := newTestService(source)

	assert.Equal(t, adzuna.StatusUnhealthy, svc.Health(context.Background()).Status)
}

func TestJobByID(t *testing.T) {
	svc, _ := newTestService(&stubSource{})

	job, err := svc.JobByID("7")
	require.NoError(t, err)
	assert.Equal(t, "DevOps Engineer", job.Title)

	_, err = svc.JobByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScoreJobsAgainstResume(t *testing.T) {
	svc, _ := newTestService(&stubSource{})
	list := []*jobs.Job{listing("a", "Go Developer", fixedNow, "React", "Python", "AWS")}

	scored := svc.ScoreJobsAgainstResume(context.Background(), list, nil)
	require.Len(t, scored, 1)
	assert.Equal(t, matching.NoResumeScore, scored[0].Score)
	assert.Zero(t, list[0].Score, "input jobs are not mutated")

	assert.Equal(t, []string{"JavaScript", "Python"}, svc.ExtractSkills("javascript and python"))
}

func TestApplications(t *testing.T) {
	svc, _ := newTestService(&stubSource{})
	ctx := context.Background()

	_, err := svc.TrackApplication(ctx, "u1", storage.NewApplication{JobID: "1", JobTitle: "Go"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.TrackApplication(ctx, "u1", storage.NewApplication{JobID: "1", JobTitle: "Go", Company: "Acme", Status: "Hired"})
	require.ErrorIs(t, err, ErrInvalidInput)

	app, err := svc.TrackApplication(ctx, "u1", storage.NewApplication{JobID: "1", JobTitle: "Go", Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, storage.StatusApplied, app.Status)

	_, err = svc.UpdateApplicationStatus(ctx, "u1", app.ID, "Ghosted")
	require.ErrorIs(t, err, storage.ErrInvalidStatus)

	_, err = svc.UpdateApplicationStatus(ctx, "u1", "nope", "Offer")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateApplicationStatus(ctx, "u1", app.ID, "Interview")
	require.NoError(t, err)

	list, stats, err := svc.Applications(ctx, "u1", "Interview")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, storage.Stats{Interview: 1}, stats)

	_, _, err = svc.Applications(ctx, "u1", "interview")
	require.ErrorIs(t, err, storage.ErrInvalidStatus)

	require.NoError(t, svc.ClearApplications(ctx, "u1"))
	list, _, err = svc.Applications(ctx, "u1", "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestResumeDefaultsUser(t *testing.T) {
	svc, _ := newTestService(&stubSource{})
	ctx := context.Background()

	_, err := svc.Resume(ctx, "")
	require.ErrorIs(t, err, ErrNotFound)

	r, err := svc.IngestResume(ctx, "", "cv.txt", "", []byte("Go and Docker engineer, 5 years of experience"))
	require.NoError(t, err)
	assert.Equal(t, DefaultUserID, r.UserID)
	assert.Equal(t, fixedNow, r.UploadedAt)

	got, err := svc.Resume(ctx, DefaultUserID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
}
