// Package ai defines the contract with external reasoning providers used to
// rate how well a resume fits a job.
package ai

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/job-radar/internal/jobs"
)

// ErrScoreUnparseable is returned when a provider reply does not start with an integer.
var ErrScoreUnparseable = errors.New("reasoning provider returned an unparseable score")

// Rating is a provider's opinion of a resume/job pair.
type Rating struct {
	Score int
	Raw   string
}

// Rater asks a reasoning provider for a 0-100 fit score.
type Rater interface {
	Rate(ctx context.Context, resume string, job *jobs.Job) (*Rating, error)
}

var leadingInteger = regexp.MustCompile(`^[+-]?\d+`)

// ParseScore reads the leading integer of a provider reply and clamps it to [0,100].
// Code fences and surrounding whitespace are ignored.
func ParseScore(raw string) (int, error) {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```text")
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.LastIndex(cleaned, "```"); idx != -1 {
			cleaned = cleaned[:idx]
		}
	}
	cleaned = strings.TrimSpace(strings.Trim(cleaned, "`"))

	match := leadingInteger.FindString(cleaned)
	if match == "" {
		return 0, ErrScoreUnparseable
	}

	score, err := strconv.Atoi(match)
	if err != nil {
		// Only overflow gets here.
		if strings.HasPrefix(match, "-") {
			return 0, nil
		}
		return 100, nil
	}

	return min(max(score, 0), 100), nil
}
