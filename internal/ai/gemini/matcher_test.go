package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/ai"
	"github.com/spigell/job-radar/internal/jobs"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func testJob() *jobs.Job {
	return &jobs.Job{
		ID:          "adzuna_1",
		Description: "Build React frontends backed by AWS.",
		Skills:      []string{"React", "Python", "AWS"},
	}
}

func TestRaterRate(t *testing.T) {
	stub := &stubGenerator{response: "82"}
	rater := NewRater(stub, zap.NewNop(), 0)

	rating, err := rater.Rate(context.Background(), "Experienced React and Node.js developer with AWS skills", testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rating.Score != 82 || rating.Raw != "82" {
		t.Fatalf("unexpected rating: %+v", rating)
	}

	for _, want := range []string{
		"Experienced React and Node.js developer",
		"Build React frontends backed by AWS.",
		"React, Python, AWS",
		"Return ONLY a number between 0-100",
	} {
		if !strings.Contains(stub.lastPrompt, want) {
			t.Fatalf("expected prompt to contain %q, got: %s", want, stub.lastPrompt)
		}
	}
	if strings.Contains(stub.lastPrompt, "{{") {
		t.Fatalf("unreplaced placeholder in prompt: %s", stub.lastPrompt)
	}
}

func TestRaterBoundsResumeExcerpt(t *testing.T) {
	stub := &stubGenerator{response: "50"}
	rater := NewRater(stub, zap.NewNop(), 0)

	resume := strings.Repeat("r", MaxResumeRunes) + "TAIL"
	if _, err := rater.Rate(context.Background(), resume, testJob()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(stub.lastPrompt, "TAIL") {
		t.Fatalf("expected resume excerpt to be cut at %d runes", MaxResumeRunes)
	}
	if !strings.Contains(stub.lastPrompt, strings.Repeat("r", MaxResumeRunes)) {
		t.Fatalf("expected full excerpt in prompt")
	}
}

func TestRaterClampsScore(t *testing.T) {
	rating, err := NewRater(&stubGenerator{response: "250"}, zap.NewNop(), 0).
		Rate(context.Background(), "Go developer", testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rating.Score != 100 {
		t.Fatalf("expected clamped score 100, got %d", rating.Score)
	}
}

func TestRaterFailures(t *testing.T) {
	ctx := context.Background()

	_, err := NewRater(&stubGenerator{response: "a strong match"}, zap.NewNop(), 0).Rate(ctx, "Go developer", testJob())
	if !errors.Is(err, ai.ErrScoreUnparseable) {
		t.Fatalf("expected ErrScoreUnparseable, got %v", err)
	}

	boom := errors.New("unreachable")
	_, err = NewRater(&stubGenerator{err: boom}, zap.NewNop(), 0).Rate(ctx, "Go developer", testJob())
	if !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}

	stub := &stubGenerator{response: "70"}
	if _, err := NewRater(stub, zap.NewNop(), 0).Rate(ctx, "  ", testJob()); err == nil {
		t.Fatalf("expected error for empty resume")
	}
	if stub.lastPrompt != "" {
		t.Fatalf("provider must not be called for empty resume")
	}
}
