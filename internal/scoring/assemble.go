package scoring

import (
	"sort"

	"github.com/jobscoutdev/jobscout/internal/jobs"
)

// Assemble concatenates the semantically re-ranked head with the
// heuristic tail and assigns contiguous 1-based ranks across the full
// list. The head is ordered by semantic score descending; the tail is
// re-sorted by heuristic score. An empty head (re-ranker failed or
// nothing to re-rank) leaves the whole list in heuristic order.
func Assemble(head, tail *jobs.Jobs) *jobs.Jobs {
	sort.SliceStable(head.Items, func(i, j int) bool {
		return semanticScore(head.Items[i]) > semanticScore(head.Items[j])
	})
	tail.SortByScore()

	final := &jobs.Jobs{}
	final.Append(head)
	final.Append(tail)

	for i, job := range final.Items {
		job.Rank = i + 1
	}

	return final
}

func semanticScore(job *jobs.Job) int {
	if job.SemanticScore == nil {
		return 0
	}
	return *job.SemanticScore
}
