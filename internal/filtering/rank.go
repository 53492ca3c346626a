package filtering

import (
	"cmp"
	"slices"

	"github.com/spigell/job-radar/internal/jobs"
)

// BestMatchesLimit is the size of the best matches slice.
const BestMatchesLimit = 8

// Rank sorts the list by descending match score. Ties keep their relative order.
func Rank(list *jobs.Jobs) *jobs.Jobs {
	if list == nil {
		return &jobs.Jobs{Items: []*jobs.Job{}}
	}
	slices.SortStableFunc(list.Items, func(a, b *jobs.Job) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return list
}

// BestMatches returns up to n leading jobs of an already ranked list.
func BestMatches(list *jobs.Jobs, n int) []*jobs.Job {
	n = min(max(n, 0), list.Len())
	out := make([]*jobs.Job, n)
	if n > 0 {
		copy(out, list.Items[:n])
	}
	return out
}
