// Package matching scores jobs against resume text.
//
// A score is built from an ordered list of strategies. The keyword strategy
// always answers; the model strategy asks a reasoning provider and may skip.
// Successful outcomes are averaged with equal weight.
package matching

import (
	"math"
	"strings"

	"github.com/spigell/job-radar/internal/jobs"
	"github.com/spigell/job-radar/internal/skills"
)

const (
	// NoResumeScore is the score given when there is no resume text at all.
	NoResumeScore = 30
	// MinScore is the floor for any keyword score computed from resume text.
	MinScore = 25
	MaxScore = 100

	// MinResumeLength is the shortest resume text sent to a reasoning provider.
	MinResumeLength = 10

	highThreshold   = 70
	mediumThreshold = 40

	exactWeight   = 100
	partialWeight = 50
)

// KeywordScore is the deterministic score of resume text against job skills.
// A whole-word hit counts as an exact match; plain containment as a partial one.
// Blank skills are ignored.
func KeywordScore(resume string, jobSkills []string) int {
	if strings.TrimSpace(resume) == "" {
		return NoResumeScore
	}

	lowerResume := strings.ToLower(resume)
	exact, partial, counted := 0, 0, 0
	for _, skill := range jobSkills {
		if strings.TrimSpace(skill) == "" {
			continue
		}
		counted++

		switch {
		case skills.ContainsWord(resume, skill):
			exact++
		case strings.Contains(lowerResume, strings.ToLower(skill)):
			partial++
		}
	}

	total := max(counted, 1)
	raw := float64(exact*exactWeight+partial*partialWeight) / float64(total*100) * 100

	return clamp(int(math.Round(raw)), MinScore, MaxScore)
}

// Badge buckets a score. The filter pipeline uses the same partition.
func Badge(score int) jobs.Badge {
	switch {
	case score > highThreshold:
		return jobs.BadgeHigh
	case score > mediumThreshold:
		return jobs.BadgeMedium
	default:
		return jobs.BadgeLow
	}
}

// InBucket reports whether score falls into the given bucket.
func InBucket(score int, bucket jobs.Badge) bool {
	return Badge(score) == bucket
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
